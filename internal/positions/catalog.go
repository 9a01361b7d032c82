package positions

// DefaultPosition is used when a position name is not in the catalog.
const DefaultPosition = "HVAC Technician"

// PositionCriteria describes what an evaluator should look for in a role.
type PositionCriteria struct {
	Title                string   `json:"title"`
	KeySkills            []string `json:"keySkills"`
	ExperienceGuidelines string   `json:"experienceGuidelines"`
	AdditionalNotes      string   `json:"additionalNotes"`
}

var catalog = map[string]PositionCriteria{
	"HVAC Technician": {
		Title: "HVAC Technician",
		KeySkills: []string{
			"Diagnosing and repairing heating, cooling and ventilation systems",
			"Refrigerant handling and recovery (EPA 608)",
			"Electrical troubleshooting: controls, motors, capacitors, contactors",
			"Reading wiring diagrams and schematics",
			"Preventive maintenance on residential and light commercial equipment",
			"Customer communication in the home",
		},
		ExperienceGuidelines: "2-5 years of field service experience on residential or light commercial HVAC equipment. Time as a helper or apprentice counts at half weight.",
		AdditionalNotes:      "EPA 608 certification is expected. NATE certification, a clean driving record and on-call availability are strong positives.",
	},
	"Lead HVAC Technician": {
		Title: "Lead HVAC Technician",
		KeySkills: []string{
			"Advanced diagnostics on heat pumps, VRF, boilers and rooftop units",
			"Mentoring and field-training junior technicians",
			"Quality control and call-back reduction",
			"Commercial controls and building automation basics",
			"Estimating repair scope and parts",
			"Escalation handling with customers",
		},
		ExperienceGuidelines: "5+ years of HVAC service experience including at least 1 year leading or training other technicians.",
		AdditionalNotes:      "EPA 608 Universal expected; NATE, manufacturer factory training and a state mechanical license are strong positives.",
	},
	"HVAC Dispatcher": {
		Title: "HVAC Dispatcher",
		KeySkills: []string{
			"Scheduling and routing field technicians",
			"Field service software (ServiceTitan, Housecall Pro, FieldEdge, Jobber)",
			"Triage of emergency and no-heat/no-cool calls",
			"Phone and radio communication under pressure",
			"Capacity planning and on-call rotation management",
		},
		ExperienceGuidelines: "1-3 years of dispatch, scheduling or call-center coordination, ideally in a trades or home-services business.",
		AdditionalNotes:      "Knowledge of HVAC terminology and local geography speeds up routing. Multi-tasking and calm tone are critical.",
	},
	"Administrative Assistant": {
		Title: "Administrative Assistant",
		KeySkills: []string{
			"Office administration and document management",
			"Microsoft Office or Google Workspace",
			"Data entry accuracy",
			"Phone reception and customer greeting",
			"Invoicing and basic accounts receivable support",
		},
		ExperienceGuidelines: "1-3 years of office or administrative support experience.",
		AdditionalNotes:      "Experience supporting a field-service or construction business is a plus.",
	},
	"Customer Service Representative": {
		Title: "Customer Service Representative",
		KeySkills: []string{
			"Inbound and outbound call handling",
			"Booking service appointments and maintenance agreements",
			"CRM and field service software",
			"De-escalating upset customers",
			"Upselling maintenance plans and replacement leads",
		},
		ExperienceGuidelines: "1-2 years of customer-facing phone or call-center experience.",
		AdditionalNotes:      "Home-services or HVAC call-center experience is the strongest signal. Clear written and verbal communication required.",
	},
	"HVAC Installer": {
		Title: "HVAC Installer",
		KeySkills: []string{
			"Installing furnaces, air handlers, condensers and heat pumps",
			"Ductwork fabrication and installation",
			"Line set brazing, evacuation and charging",
			"Low-voltage and line-voltage wiring",
			"Reading installation plans and following code",
		},
		ExperienceGuidelines: "1-4 years of residential or light commercial installation experience.",
		AdditionalNotes:      "EPA 608 expected for anyone handling refrigerant. Ability to lift 75 lbs and work in attics and crawlspaces.",
	},
	"Lead HVAC Installer": {
		Title: "Lead HVAC Installer",
		KeySkills: []string{
			"Leading install crews and planning job-site workflow",
			"Full system change-outs including duct redesign",
			"Start-up and commissioning",
			"Permit and inspection coordination",
			"Quality control of finished installs",
		},
		ExperienceGuidelines: "4+ years of installation experience including crew lead responsibility.",
		AdditionalNotes:      "EPA 608 Universal expected; manufacturer install certifications and a mechanical license are positives.",
	},
	"Maintenance Technician": {
		Title: "Maintenance Technician",
		KeySkills: []string{
			"General building maintenance: HVAC, plumbing, electrical",
			"Preventive maintenance schedules and work orders",
			"Filter, belt and coil service on packaged units",
			"Basic electrical troubleshooting",
			"Safety and lock-out/tag-out procedures",
		},
		ExperienceGuidelines: "1-3 years of facilities, property or building maintenance experience.",
		AdditionalNotes:      "EPA 608 and OSHA-10 are positives. Property-management and multi-family experience translate well.",
	},
	"Warehouse Associate": {
		Title: "Warehouse Associate",
		KeySkills: []string{
			"Receiving, stocking and pulling parts and equipment",
			"Inventory counts and cycle counting",
			"Forklift and pallet jack operation",
			"Loading service vans and staging install jobs",
			"Shipping and receiving paperwork",
		},
		ExperienceGuidelines: "0-2 years of warehouse, distribution or parts-counter experience.",
		AdditionalNotes:      "Forklift certification and HVAC parts familiarity are positives. Reliability and attendance matter most.",
	},
	"Bookkeeper": {
		Title: "Bookkeeper",
		KeySkills: []string{
			"Accounts payable and receivable",
			"Bank and credit card reconciliation",
			"QuickBooks or similar accounting software",
			"Payroll processing support",
			"Job costing for service and install work",
		},
		ExperienceGuidelines: "2-4 years of full-cycle bookkeeping experience.",
		AdditionalNotes:      "Experience with trades or construction job costing is a strong positive. QuickBooks certification is a plus.",
	},
	"HVAC Sales Representative": {
		Title: "HVAC Sales Representative",
		KeySkills: []string{
			"In-home consultative sales of HVAC replacement systems",
			"Load calculation basics (Manual J) and equipment sizing",
			"Financing and rebate programs",
			"Proposal writing and follow-up",
			"Pipeline management in a CRM",
		},
		ExperienceGuidelines: "2+ years of in-home or B2B sales; HVAC or home-improvement sales preferred.",
		AdditionalNotes:      "A track record of closing rates or revenue targets is the strongest signal. Technical HVAC background is a plus.",
	},
	"HVAC Service Manager": {
		Title: "HVAC Service Manager",
		KeySkills: []string{
			"Managing service technicians and dispatch",
			"KPI ownership: call-backs, revenue per call, agreement conversion",
			"Hiring, training and performance management",
			"Technical escalation support",
			"Budgeting and scheduling",
		},
		ExperienceGuidelines: "5+ years in HVAC service with 2+ years supervising technicians.",
		AdditionalNotes:      "Field technician background strongly preferred. Experience with flat-rate pricing and service agreements is a plus.",
	},
	"Apprentice": {
		Title: "Apprentice",
		KeySkills: []string{
			"Willingness to learn and follow safety procedures",
			"Basic hand and power tool use",
			"Mechanical aptitude",
			"Reliable transportation and punctuality",
			"Trade school or vocational coursework",
		},
		ExperienceGuidelines: "No experience required. Helper, construction or trade-school experience is a bonus.",
		AdditionalNotes:      "OSHA-10 and EPA 608 (any type) show initiative. Look for reliability and genuine interest in the trade.",
	},
}

// catalogOrder lists catalog names in a stable presentation order.
var catalogOrder = []string{
	"HVAC Technician",
	"Lead HVAC Technician",
	"HVAC Dispatcher",
	"Administrative Assistant",
	"Customer Service Representative",
	"HVAC Installer",
	"Lead HVAC Installer",
	"Maintenance Technician",
	"Warehouse Associate",
	"Bookkeeper",
	"HVAC Sales Representative",
	"HVAC Service Manager",
	"Apprentice",
}

// Criteria returns the criteria for positionName. Lookup is an exact string
// match; unknown names fall back to the HVAC Technician criteria.
func Criteria(positionName string) PositionCriteria {
	if c, ok := catalog[positionName]; ok {
		return c.clone()
	}
	return catalog[DefaultPosition].clone()
}

// Known reports whether positionName is an exact catalog entry.
func Known(positionName string) bool {
	_, ok := catalog[positionName]
	return ok
}

// Names returns the catalog's position names.
func Names() []string {
	out := make([]string, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}

func (c PositionCriteria) clone() PositionCriteria {
	c.KeySkills = append([]string(nil), c.KeySkills...)
	return c
}
