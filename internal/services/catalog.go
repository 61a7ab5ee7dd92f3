package services

// Catalog is the static assessment questionnaire: five sections of weighted
// questions. The catalog is immutable; callers must not modify the returned
// slices.
func Catalog() []Section {
	return catalog
}

// CatalogQuestionCount returns the total number of questions across all
// sections, used for completeness validation and progress display.
func CatalogQuestionCount() int {
	n := 0
	for _, sec := range catalog {
		n += len(sec.Questions)
	}
	return n
}

var catalog = []Section{
	{
		ID:    "https",
		Title: "HTTPS & SSL Configuration",
		Questions: []Question{
			{
				ID:     "https_enabled",
				Text:   "Does your organization use HTTPS for all web applications?",
				Type:   QuestionBoolean,
				Weight: 15,
			},
			{
				ID:      "ssl_certificate",
				Text:    "What type of SSL certificate do you use?",
				Type:    QuestionMultiple,
				Options: []string{"Self-signed", "Domain Validated (DV)", "Organization Validated (OV)", "Extended Validation (EV)"},
				Weight:  10,
			},
			{
				ID:      "certificate_expiry",
				Text:    "How often do you monitor SSL certificate expiry?",
				Type:    QuestionMultiple,
				Options: []string{"Never", "Manually when remembered", "Monthly", "Weekly", "Automated monitoring"},
				Weight:  8,
			},
		},
	},
	{
		ID:    "mfa",
		Title: "Multi-Factor Authentication",
		Questions: []Question{
			{
				ID:     "mfa_enabled",
				Text:   "Is multi-factor authentication (MFA) enabled for all user accounts?",
				Type:   QuestionBoolean,
				Weight: 20,
			},
			{
				ID:      "mfa_type",
				Text:    "What type of MFA do you primarily use?",
				Type:    QuestionMultiple,
				Options: []string{"SMS", "Email", "Authenticator App", "Hardware Token", "Biometric"},
				Weight:  12,
			},
			{
				ID:     "mfa_coverage",
				Text:   "What percentage of your users have MFA enabled?",
				Type:   QuestionScale,
				Weight: 15,
			},
		},
	},
	{
		ID:    "encryption",
		Title: "Data Encryption",
		Questions: []Question{
			{
				ID:     "data_at_rest",
				Text:   "Is sensitive data encrypted at rest?",
				Type:   QuestionBoolean,
				Weight: 18,
			},
			{
				ID:     "data_in_transit",
				Text:   "Is data encrypted in transit between systems?",
				Type:   QuestionBoolean,
				Weight: 16,
			},
			{
				ID:      "encryption_standard",
				Text:    "What encryption standard do you use?",
				Type:    QuestionMultiple,
				Options: []string{"No encryption", "Basic encryption", "AES-128", "AES-256", "Industry-specific standards"},
				Weight:  14,
			},
		},
	},
	{
		ID:    "incidents",
		Title: "Security Incidents",
		Questions: []Question{
			{
				ID:     "breach_history",
				Text:   "Has your organization experienced any data breaches in the last 2 years?",
				Type:   QuestionBoolean,
				Weight: -25,
			},
			{
				ID:     "incident_response",
				Text:   "Do you have a documented incident response plan?",
				Type:   QuestionBoolean,
				Weight: 12,
			},
			{
				ID:      "response_time",
				Text:    "What is your average incident response time?",
				Type:    QuestionMultiple,
				Options: []string{"No formal process", "> 24 hours", "12-24 hours", "4-12 hours", "< 4 hours"},
				Weight:  10,
			},
		},
	},
	{
		ID:    "policies",
		Title: "Data Policies",
		Questions: []Question{
			{
				ID:     "data_retention",
				Text:   "Do you have a documented data retention policy?",
				Type:   QuestionBoolean,
				Weight: 8,
			},
			{
				ID:     "privacy_policy",
				Text:   "Is your privacy policy regularly updated and compliant with regulations?",
				Type:   QuestionBoolean,
				Weight: 10,
			},
			{
				ID:      "employee_training",
				Text:    "How often do you conduct security awareness training for employees?",
				Type:    QuestionMultiple,
				Options: []string{"Never", "Annually", "Bi-annually", "Quarterly", "Monthly"},
				Weight:  12,
			},
		},
	},
}
