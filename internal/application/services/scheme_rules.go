package services

import (
	"github.com/carecost/predictor/internal/domain/entities"
)

// schemeRule binds a static scheme description to its eligibility check.
// The table is declared up front so recommendations never depend on
// training-data composition.
type schemeRule struct {
	scheme  entities.Scheme
	matches func(rec entities.Record, predictedCost float64) bool
}

var schemeRules = []schemeRule{
	{
		scheme: entities.Scheme{
			Name:        "Basic Healthcare Assistance Program",
			Eligibility: "All residents with annual healthcare costs below 10,000",
			Coverage:    "Up to 5,000 annual coverage for basic healthcare needs",
			Benefits: []string{
				"Primary care visits covered",
				"Preventive care and vaccinations",
				"Generic prescription medications",
				"Basic diagnostic tests",
			},
			Application: "Apply online at your state healthcare marketplace",
			Priority:    "High",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return cost < 10000
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Healthcare Cost Relief Program",
			Eligibility: "Individuals with high medical costs (above 15,000 annually)",
			Coverage:    "Subsidized premiums and reduced out-of-pocket costs",
			Benefits: []string{
				"Premium subsidies up to 80%",
				"Reduced deductibles and copays",
				"Coverage for chronic condition management",
				"Prescription drug assistance",
			},
			Application: "Contact your local health department or apply online",
			Priority:    "High",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return cost > 15000
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Family Healthcare Support Program",
			Eligibility: "Families with 2 or more dependent children",
			Coverage:    "Coverage for the whole family",
			Benefits: []string{
				"Pediatric care coverage",
				"Maternity and newborn care",
				"Family dental and vision",
				"Mental health services for children",
			},
			Application: "Apply through state family services department",
			Priority:    "Medium",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return rec.Children >= 2
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Senior Health Assistance Program",
			Eligibility: "Adults aged 55 and older",
			Coverage:    "Comprehensive coverage for age-related health needs",
			Benefits: []string{
				"Annual health screenings",
				"Chronic disease management",
				"Prescription drug coverage",
				"Home healthcare services",
			},
			Application: "Enroll through senior services office or online portal",
			Priority:    "High",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return rec.Age >= 55
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Tobacco Cessation Support Program",
			Eligibility: "Current smokers seeking to quit",
			Coverage:    "Free cessation support and medications",
			Benefits: []string{
				"Nicotine replacement therapy",
				"Counseling and support groups",
				"Prescription cessation medications",
				"Follow-up care for 12 months",
			},
			Application: "Call the quitline or visit the cessation program website",
			Priority:    "High",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return rec.IsSmoker()
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Healthy Weight Initiative",
			Eligibility: "Individuals with BMI above 30",
			Coverage:    "Free weight management and nutrition services",
			Benefits: []string{
				"Nutritionist consultations",
				"Fitness program access",
				"Diabetes prevention program",
			},
			Application: "Enroll through primary care physician or health department",
			Priority:    "Medium",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return rec.BMI > 30
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "Regional Health Access Program",
			Eligibility: "Residents of the southeast and southwest regions",
			Coverage:    "Enhanced access to regional healthcare facilities",
			Benefits: []string{
				"Network of community health centers",
				"Telehealth services",
				"Mobile health clinics",
				"Sliding scale fees based on income",
			},
			Application: "Contact the regional health authority",
			Priority:    "Medium",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return rec.Region == entities.RegionSoutheast || rec.Region == entities.RegionSouthwest
		},
	},
	{
		scheme: entities.Scheme{
			Name:        "National Preventive Care Initiative",
			Eligibility: "All residents",
			Coverage:    "Free preventive care services",
			Benefits: []string{
				"Annual wellness exam",
				"Cancer screenings",
				"Immunizations",
				"Blood pressure and cholesterol checks",
			},
			Application: "Available at all participating healthcare providers",
			Priority:    "Medium",
		},
		matches: func(rec entities.Record, cost float64) bool {
			return true
		},
	},
}
