package rubric

type competency struct {
	name   string
	detail string
}

// profile holds the role-specific content of a framework. Everything else
// in the framework text is shared.
type profile struct {
	position            string
	competencies        []competency
	exactTitles         []string
	equivalentTitles    []string
	certLabel           string
	certGuidance        []string
	overqualifiedTitles []string
	weights             Weights
	entryLevelRule      bool
}

var serviceTechnicianProfile = profile{
	position: "HVAC Service Technician",
	competencies: []competency{
		{"Diagnostics and Troubleshooting", "electrical and refrigeration diagnosis, reading schematics, using meters and gauges, finding root cause on no-heat and no-cool calls"},
		{"Installation and Repair", "replacing motors, compressors, capacitors and controls; brazing; evacuation and charging; maintenance agreements"},
		{"Customer Interaction", "explaining repairs in the home, presenting options, professional conduct, generating replacement leads"},
		{"Reliability and Safety", "on-call availability, clean driving record, safety practices, consistent tenure with employers"},
	},
	exactTitles:         []string{"HVAC Service Technician", "HVAC Technician", "Service Technician", "HVAC/R Technician"},
	equivalentTitles:    []string{"HVAC Mechanic", "Refrigeration Technician", "Heating Technician", "AC Technician", "Field Service Technician (HVAC)", "Maintenance Technician (HVAC focus)", "HVAC Installer with service calls"},
	certLabel:           "Certs",
	certGuidance:        []string{"EPA 608 (Universal preferred, Type II acceptable) is the key certification", "NATE certification is a strong positive", "State or municipal mechanical license counts as certified", "Manufacturer factory training (Carrier, Trane, Lennox) counts as supporting evidence"},
	overqualifiedTitles: []string{"Service Manager", "Operations Manager", "General Manager", "HVAC Business Owner", "Mechanical Engineer"},
	weights:             Weights{Close: 20, NotClose: 45, MidResume: 5, PoorResume: 12, NoCerts: 10, SmallGap: 3, LargeGap: 8, JobHoppy: 5, MidDistance: 3, FarDistance: 8, Span: 10},
}

var leadTechnicianProfile = profile{
	position: "Lead HVAC Technician",
	competencies: []competency{
		{"Advanced Diagnostics", "heat pumps, VRF, boilers, rooftop units and commercial controls; solving problems other technicians escalate"},
		{"Leadership and Mentoring", "training junior technicians, ride-alongs, reviewing work quality, setting the example on the job site"},
		{"Quality and Call-back Reduction", "first-time fix rate, documentation, following up on repeat failures"},
		{"Customer and Escalation Handling", "handling difficult customers, estimating larger repairs, representing the company on escalations"},
	},
	exactTitles:         []string{"Lead HVAC Technician", "Lead Service Technician", "Senior HVAC Technician", "HVAC Field Supervisor"},
	equivalentTitles:    []string{"Senior Service Technician", "HVAC Crew Lead", "Commercial HVAC Technician with training duties", "Refrigeration Lead", "HVAC Foreman"},
	certLabel:           "Certs",
	certGuidance:        []string{"EPA 608 Universal is expected", "NATE certification in multiple specialties is a strong positive", "State mechanical or contractor license is a strong positive", "Manufacturer advanced training and controls certifications support the lead role"},
	overqualifiedTitles: []string{"Service Manager", "Operations Manager", "General Manager", "Director of Service", "Business Owner"},
	weights:             Weights{Close: 22, NotClose: 48, MidResume: 5, PoorResume: 12, NoCerts: 12, SmallGap: 3, LargeGap: 8, JobHoppy: 6, MidDistance: 3, FarDistance: 8, Span: 10},
}

var dispatcherProfile = profile{
	position: "HVAC Dispatcher",
	competencies: []competency{
		{"Scheduling and Routing", "assigning calls by skill and location, balancing technician workload, keeping the board current"},
		{"Software Proficiency", "ServiceTitan, Housecall Pro, FieldEdge, Jobber or comparable dispatch and CRM tools"},
		{"Communication Under Pressure", "handling emergency calls, keeping customers and technicians informed, calm tone"},
		{"Organization and Reliability", "accurate records, follow-through, consistent attendance and tenure"},
	},
	exactTitles:         []string{"HVAC Dispatcher", "Dispatcher", "Service Dispatcher", "Field Service Dispatcher"},
	equivalentTitles:    []string{"Service Coordinator", "Scheduling Coordinator", "Call Center Dispatcher", "Logistics Coordinator", "Emergency Dispatcher", "Customer Service Representative with dispatch duties"},
	certLabel:           "Software Skills",
	certGuidance:        []string{"Named field service software counts as a listed skill", "Dispatch or emergency communications certificates count as listed", "Microsoft Office or Google Workspace alone counts as a partial listing"},
	overqualifiedTitles: []string{"Operations Manager", "General Manager", "Director of Operations", "Service Manager", "Business Owner"},
	weights:             Weights{Close: 18, NotClose: 40, MidResume: 6, PoorResume: 14, NoCerts: 8, SmallGap: 3, LargeGap: 8, JobHoppy: 6, MidDistance: 4, FarDistance: 10, Span: 10},
}

var adminAssistantProfile = profile{
	position: "Administrative Assistant",
	competencies: []competency{
		{"Office Administration", "filing, document management, phone reception, scheduling and calendar management"},
		{"Software Proficiency", "Microsoft Office or Google Workspace, CRM and accounting tools"},
		{"Accuracy and Data Entry", "invoices, work orders, customer records and reporting"},
		{"Professionalism and Reliability", "customer greeting, discretion, attendance and tenure"},
	},
	exactTitles:         []string{"Administrative Assistant", "Admin Assistant", "Office Assistant", "Office Administrator"},
	equivalentTitles:    []string{"Receptionist", "Front Desk Coordinator", "Office Coordinator", "Executive Assistant", "Clerical Assistant", "Customer Service Representative with office duties"},
	certLabel:           "Software Skills",
	certGuidance:        []string{"Microsoft Office Specialist or similar certificates count as listed", "Named accounting or CRM software counts as a listed skill", "Typing speed or data entry certificates count as supporting evidence"},
	overqualifiedTitles: []string{"Office Manager", "Operations Manager", "General Manager", "Director of Administration", "Controller"},
	weights:             Weights{Close: 15, NotClose: 35, MidResume: 8, PoorResume: 18, NoCerts: 6, SmallGap: 3, LargeGap: 7, JobHoppy: 6, MidDistance: 4, FarDistance: 10, Span: 10},
}

var customerServiceProfile = profile{
	position: "Customer Service Representative",
	competencies: []competency{
		{"Call Handling", "inbound and outbound calls, booking appointments, handling volume"},
		{"Customer Relations", "de-escalation, empathy, resolving complaints, retaining maintenance agreement members"},
		{"Systems and Records", "CRM and field service software, accurate notes, scheduling tools"},
		{"Sales Support and Reliability", "offering maintenance plans, generating replacement leads, attendance and tenure"},
	},
	exactTitles:         []string{"Customer Service Representative", "CSR", "Customer Service Specialist", "Call Center Representative"},
	equivalentTitles:    []string{"Customer Care Agent", "Client Services Representative", "Receptionist", "Inside Sales Representative", "Service Coordinator", "Call Center Agent"},
	certLabel:           "Software Skills",
	certGuidance:        []string{"Named CRM or field service software counts as a listed skill", "Customer service certificates count as listed", "Bilingual ability is a strong positive and counts as a listed skill"},
	overqualifiedTitles: []string{"Customer Service Manager", "Call Center Manager", "Operations Manager", "General Manager", "Director of Customer Experience"},
	weights:             Weights{Close: 15, NotClose: 35, MidResume: 8, PoorResume: 16, NoCerts: 5, SmallGap: 3, LargeGap: 7, JobHoppy: 6, MidDistance: 4, FarDistance: 10, Span: 10},
}

var apprenticeProfile = profile{
	position: "HVAC Apprentice",
	competencies: []competency{
		{"Mechanical Aptitude", "hands-on work, tool use, construction or trade exposure, fixing things"},
		{"Willingness to Learn", "trade school, vocational courses, certifications pursued on their own initiative"},
		{"Safety Awareness", "OSHA training, following procedures, physical readiness for attics and roofs"},
		{"Reliability", "punctuality, reliable transportation, consistent attendance in any prior job"},
	},
	exactTitles:         []string{"HVAC Apprentice", "Apprentice", "HVAC Helper", "HVAC Trainee"},
	equivalentTitles:    []string{"Installer Helper", "Construction Laborer", "Electrician Helper", "Plumber Helper", "Maintenance Helper", "General Laborer", "Warehouse Associate with trade exposure"},
	certLabel:           "Certs",
	certGuidance:        []string{"EPA 608 of any type is a strong positive", "OSHA-10 or OSHA-30 counts as listed", "Trade school or vocational HVAC certificate counts as listed", "A valid driver's license supports reliability but is not a certification"},
	overqualifiedTitles: []string{"HVAC Service Technician", "Lead HVAC Technician", "Service Manager", "Journeyman", "Master Technician"},
	weights:             Weights{Close: 10, NotClose: 25, MidResume: 6, PoorResume: 14, NoCerts: 12, SmallGap: 2, LargeGap: 6, JobHoppy: 6, MidDistance: 4, FarDistance: 10, Span: 10},
	entryLevelRule:      true,
}

var bookkeeperProfile = profile{
	position: "Bookkeeper",
	competencies: []competency{
		{"Accounts Payable and Receivable", "vendor bills, customer invoices, collections and payment posting"},
		{"Reconciliation and Reporting", "bank and credit card reconciliation, month-end close support, financial reports"},
		{"Accounting Software", "QuickBooks, Sage, Xero or comparable systems; spreadsheets"},
		{"Job Costing and Payroll", "job costing for service and install work, payroll support, accuracy and confidentiality"},
	},
	exactTitles:         []string{"Bookkeeper", "Full Charge Bookkeeper", "Accounting Clerk", "Accounts Payable/Receivable Specialist"},
	equivalentTitles:    []string{"Staff Accountant", "Accounting Assistant", "Billing Specialist", "Payroll Clerk", "Office Manager with bookkeeping duties"},
	certLabel:           "Certs",
	certGuidance:        []string{"QuickBooks Certified User or ProAdvisor counts as listed", "Certified Bookkeeper (AIPB or NACPB) is a strong positive", "An accounting degree or coursework counts as supporting evidence"},
	overqualifiedTitles: []string{"Controller", "CFO", "Accounting Manager", "CPA", "Finance Director"},
	weights:             Weights{Close: 18, NotClose: 40, MidResume: 7, PoorResume: 16, NoCerts: 7, SmallGap: 3, LargeGap: 7, JobHoppy: 6, MidDistance: 3, FarDistance: 8, Span: 10},
}

var warehouseProfile = profile{
	position: "Warehouse Associate",
	competencies: []competency{
		{"Receiving and Inventory", "checking in deliveries, stocking, cycle counts, inventory accuracy"},
		{"Equipment Operation", "forklift, pallet jack, safe lifting and loading"},
		{"Order Fulfillment", "pulling parts, staging install jobs, loading service vans"},
		{"Reliability and Safety", "attendance, punctuality, safety record, steady tenure"},
	},
	exactTitles:         []string{"Warehouse Associate", "Warehouse Worker", "Parts Runner", "Inventory Clerk"},
	equivalentTitles:    []string{"Shipping and Receiving Clerk", "Stock Associate", "Material Handler", "Forklift Operator", "Parts Counter Associate", "Delivery Driver"},
	certLabel:           "Certs",
	certGuidance:        []string{"Forklift certification counts as listed", "OSHA-10 counts as listed", "A commercial or clean driving record supports van loading and parts runs"},
	overqualifiedTitles: []string{"Warehouse Manager", "Operations Manager", "Logistics Manager", "Distribution Center Manager", "General Manager"},
	weights:             Weights{Close: 10, NotClose: 25, MidResume: 5, PoorResume: 10, NoCerts: 6, SmallGap: 3, LargeGap: 7, JobHoppy: 8, MidDistance: 5, FarDistance: 12, Span: 10},
}

var salesRepProfile = profile{
	position: "HVAC Sales Representative",
	competencies: []competency{
		{"Consultative Selling", "in-home consultations, needs assessment, presenting good-better-best options"},
		{"Technical Product Knowledge", "equipment sizing, load calculation basics, efficiency ratings, rebates"},
		{"Pipeline and Closing", "lead follow-up, CRM discipline, closing rates and revenue targets"},
		{"Professionalism and Reliability", "presentation, trust-building, tenure and attendance"},
	},
	exactTitles:         []string{"HVAC Sales Representative", "Comfort Advisor", "HVAC Sales Consultant", "Residential HVAC Sales"},
	equivalentTitles:    []string{"In-Home Sales Consultant", "Home Improvement Sales Representative", "Solar Sales Consultant", "Outside Sales Representative", "Account Executive (trades)", "HVAC Technician with sales duties"},
	certLabel:           "Certs",
	certGuidance:        []string{"NATE or EPA 608 gives technical credibility and counts as listed", "Sales training programs (Sandler, manufacturer sales training) count as listed", "Documented quota attainment counts as supporting evidence"},
	overqualifiedTitles: []string{"Sales Manager", "VP of Sales", "General Manager", "Director of Sales", "Business Owner"},
	weights:             Weights{Close: 18, NotClose: 40, MidResume: 7, PoorResume: 15, NoCerts: 6, SmallGap: 3, LargeGap: 8, JobHoppy: 6, MidDistance: 2, FarDistance: 6, Span: 10},
}
