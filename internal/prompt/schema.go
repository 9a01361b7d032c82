package prompt

// outputExample is the literal response shape the model is asked to return.
const outputExample = `{
  "overallScore": <integer 0-100, final score after every adjustment>,
  "rubricScore": <integer 0-100, score before the title penalty and overqualification override>,
  "summary": "<2-3 sentence summary of fit for this position>",
  "candidateInfo": {
    "name": "<full name or empty string>",
    "email": "<email or empty string>",
    "phone": "<phone or empty string>",
    "location": "<city, state or empty string>"
  },
  "technicalSkills": {
    "score": <integer 0-100>,
    "skills": ["<skill>", "..."],
    "notes": "<short justification>"
  },
  "certifications": {
    "score": <integer 0-100>,
    "listed": ["<certification>", "..."],
    "notes": "<short justification>"
  },
  "experience": {
    "totalYears": <number>,
    "relevantYears": <number>,
    "tier": "required" | "close" | "not_close",
    "currentTitle": "<most recent job title>",
    "titleMatch": "exact" | "equivalent" | "none",
    "workGap": "none" | "small" | "large",
    "jobHoppy": <boolean>,
    "notes": "<how the years were counted>"
  },
  "presentationQuality": {
    "score": <integer 0-100>,
    "rating": "good" | "mid" | "poor",
    "notes": "<short justification>"
  },
  "distance": {
    "bucket": "under_30" | "30_to_50" | "over_50",
    "notes": "<locations compared, or why unknown>"
  },
  "strengths": ["<strength>", "..."],
  "weaknesses": ["<weakness>", "..."],
  "recommendations": ["<next step for the hiring manager>", "..."],
  "hiringRecommendation": "strongly_recommend" | "recommend" | "consider" | "not_recommended",
  "isOverqualified": <boolean>,
  "overqualificationReason": "<reason or empty string>",
  "giveThemAChance": <boolean>
}`
