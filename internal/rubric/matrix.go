package rubric

import (
	"errors"
	"fmt"
	"strings"
)

// ResumeQuality grades how well a resume presents the candidate.
type ResumeQuality string

const (
	ResumeGood ResumeQuality = "good"
	ResumeMid  ResumeQuality = "mid"
	ResumePoor ResumeQuality = "poor"
)

// WorkGap is the longest employment gap in the recent history.
type WorkGap string

const (
	GapNone  WorkGap = "none"
	GapSmall WorkGap = "small"
	GapLarge WorkGap = "large"
)

// Distance is the commute bucket between candidate and job location.
type Distance string

const (
	DistanceNear Distance = "under_30"
	DistanceMid  Distance = "30_to_50"
	DistanceFar  Distance = "over_50"
)

var (
	experienceOrder = []ExperienceTier{TierRequired, TierClose, TierNotClose}
	resumeOrder     = []ResumeQuality{ResumeGood, ResumeMid, ResumePoor}
	gapOrder        = []WorkGap{GapNone, GapSmall, GapLarge}
	distanceOrder   = []Distance{DistanceNear, DistanceMid, DistanceFar}
)

// Row is one cell of the scoring matrix.
type Row struct {
	Experience  ExperienceTier
	Resume      ResumeQuality
	CertsListed bool
	Gap         WorkGap
	JobHoppy    bool
	Distance    Distance
}

// Weights calibrate a role's matrix. Each field is the number of points a
// condition removes from the top of the best range; Span is the width of
// every range.
type Weights struct {
	Close       int
	NotClose    int
	MidResume   int
	PoorResume  int
	NoCerts     int
	SmallGap    int
	LargeGap    int
	JobHoppy    int
	MidDistance int
	FarDistance int
	Span        int
}

var errWeights = errors.New("invalid matrix weights")

// Validate checks that worsening any dimension can only lower a range.
func (w Weights) Validate() error {
	pairs := []struct {
		name        string
		milder, big int
	}{
		{"experience", w.Close, w.NotClose},
		{"resume", w.MidResume, w.PoorResume},
		{"gap", w.SmallGap, w.LargeGap},
		{"distance", w.MidDistance, w.FarDistance},
	}
	for _, p := range pairs {
		if p.milder < 0 || p.big < p.milder {
			return fmt.Errorf("%w: %s deductions must be non-negative and ordered", errWeights, p.name)
		}
	}
	if w.NoCerts < 0 || w.JobHoppy < 0 {
		return fmt.Errorf("%w: negative deduction", errWeights)
	}
	if w.Span <= 0 || w.Span >= 100 {
		return fmt.Errorf("%w: span %d out of range", errWeights, w.Span)
	}
	return nil
}

func (w Weights) deduction(r Row) int {
	d := 0
	switch r.Experience {
	case TierClose:
		d += w.Close
	case TierNotClose:
		d += w.NotClose
	}
	switch r.Resume {
	case ResumeMid:
		d += w.MidResume
	case ResumePoor:
		d += w.PoorResume
	}
	if !r.CertsListed {
		d += w.NoCerts
	}
	switch r.Gap {
	case GapSmall:
		d += w.SmallGap
	case GapLarge:
		d += w.LargeGap
	}
	if r.JobHoppy {
		d += w.JobHoppy
	}
	switch r.Distance {
	case DistanceMid:
		d += w.MidDistance
	case DistanceFar:
		d += w.FarDistance
	}
	return d
}

// Range returns the score range for a row. The best row is always
// 100-Span to 100 and no range drops below zero.
func (w Weights) Range(r Row) Band {
	hi := 100 - w.deduction(r)
	if hi < w.Span {
		hi = w.Span
	}
	return Band{Min: hi - w.Span, Max: hi}
}

// Rows enumerates every matrix cell in presentation order.
func Rows() []Row {
	rows := make([]Row, 0, len(experienceOrder)*len(resumeOrder)*2*len(gapOrder)*2*len(distanceOrder))
	for _, exp := range experienceOrder {
		for _, res := range resumeOrder {
			for _, certs := range []bool{true, false} {
				for _, gap := range gapOrder {
					for _, hoppy := range []bool{false, true} {
						for _, dist := range distanceOrder {
							rows = append(rows, Row{
								Experience:  exp,
								Resume:      res,
								CertsListed: certs,
								Gap:         gap,
								JobHoppy:    hoppy,
								Distance:    dist,
							})
						}
					}
				}
			}
		}
	}
	return rows
}

// Matrix renders the full scoring matrix: one block per experience, resume
// and certification combination, each with 18 rows.
func Matrix(w Weights, certLabel string) string {
	var b strings.Builder
	current := ""
	for _, r := range Rows() {
		heading := blockHeading(r, certLabel)
		if heading != current {
			if current != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "### %s\n", heading)
			current = heading
		}
		band := w.Range(r)
		fmt.Fprintf(&b, "- %s, %s, %s: %d-%d\n", gapLabel(r.Gap), hoppyLabel(r.JobHoppy), distanceLabel(r.Distance), band.Min, band.Max)
	}
	return b.String()
}

// RowLabel renders a row the way the matrix text names it.
func RowLabel(r Row, certLabel string) string {
	return fmt.Sprintf("%s + %s + %s + %s", blockHeading(r, certLabel), gapLabel(r.Gap), hoppyLabel(r.JobHoppy), distanceLabel(r.Distance))
}

func blockHeading(r Row, certLabel string) string {
	certs := certLabel + " Listed"
	if !r.CertsListed {
		certs = "No " + certLabel
	}
	return fmt.Sprintf("%s + %s + %s", experienceLabel(r.Experience), resumeLabel(r.Resume), certs)
}

func experienceLabel(t ExperienceTier) string {
	switch t {
	case TierRequired:
		return "REQUIRED EXPERIENCE"
	case TierClose:
		return "CLOSE TO REQUIRED"
	default:
		return "NOT CLOSE"
	}
}

func resumeLabel(q ResumeQuality) string {
	switch q {
	case ResumeGood:
		return "Good Resume"
	case ResumeMid:
		return "Mid Resume"
	default:
		return "Poor Resume"
	}
}

func gapLabel(g WorkGap) string {
	switch g {
	case GapNone:
		return "No gap"
	case GapSmall:
		return "Small gap"
	default:
		return "Large gap"
	}
}

func hoppyLabel(h bool) string {
	if h {
		return "Job hoppy"
	}
	return "Not hoppy"
}

func distanceLabel(d Distance) string {
	switch d {
	case DistanceNear:
		return "<30mi"
	case DistanceMid:
		return "30-50mi"
	default:
		return ">50mi"
	}
}
