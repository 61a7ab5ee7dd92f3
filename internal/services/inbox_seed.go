package services

import "time"

// SeedInboxEmails returns the fixed training inbox for one vendor, newest
// first. Every vendor starts with the same three messages: two simulated
// phishing attempts and one legitimate newsletter.
func SeedInboxEmails(vendorID string) []*Email {
	return []*Email{
		{
			ID:          "seed-1",
			VendorID:    vendorID,
			Sender:      "IT Security Team",
			SenderEmail: "security@company.com",
			Subject:     "Urgent: Account Verification Required",
			Timestamp:   time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC),
			IsPhishing:  true,
			Type:        EmailPhishing,
			Priority:    "high",
			Content: "Dear User,\n\n" +
				"We have detected suspicious activity on your account. To prevent unauthorized access, " +
				"please verify your account immediately by clicking the link below:\n\n" +
				"[VERIFY ACCOUNT NOW]\n\n" +
				"If you do not verify within 24 hours, your account will be suspended.\n\n" +
				"Best regards,\nIT Security Team\n\n" +
				"This is a simulated phishing email for training purposes.",
		},
		{
			ID:            "seed-2",
			VendorID:      vendorID,
			Sender:        "HR Department",
			SenderEmail:   "hr@company.com",
			Subject:       "Monthly Security Newsletter",
			Timestamp:     time.Date(2024, 1, 20, 9, 15, 0, 0, time.UTC),
			IsRead:        true,
			IsPhishing:    false,
			Type:          EmailSafe,
			HasAttachment: true,
			Content: "Dear Team,\n\n" +
				"Welcome to our monthly security newsletter. This month we're focusing on:\n\n" +
				"- Password best practices\n" +
				"- Recognizing phishing attempts\n" +
				"- Secure remote work guidelines\n\n" +
				"Remember to always verify suspicious emails before clicking any links.\n\n" +
				"Stay secure,\nHR Department",
		},
		{
			ID:          "seed-3",
			VendorID:    vendorID,
			Sender:      "Bank Security",
			SenderEmail: "security@bank.com",
			Subject:     "Suspicious Transaction Alert",
			Timestamp:   time.Date(2024, 1, 20, 8, 45, 0, 0, time.UTC),
			IsPhishing:  true,
			Type:        EmailPhishing,
			Priority:    "high",
			Content: "Dear Customer,\n\n" +
				"We have detected a suspicious transaction of $2,500 on your account. " +
				"If this was not you, please click below to secure your account:\n\n" +
				"[SECURE ACCOUNT]\n\n" +
				"Transaction Details:\n" +
				"- Amount: $2,500.00\n" +
				"- Merchant: Online Store\n" +
				"- Time: 08:30 AM\n\n" +
				"Best regards,\nBank Security Team\n\n" +
				"This is a simulated phishing email for training purposes.",
		},
	}
}

func rewardEmail(vendorID, id string, now time.Time) *Email {
	return &Email{
		ID:          "reward-" + id,
		VendorID:    vendorID,
		Sender:      "HoneyPhish Security",
		SenderEmail: "security@honeyphish.com",
		Subject:     "Great Job! Phishing Email Detected",
		Timestamp:   now,
		IsPhishing:  false,
		Type:        EmailReward,
		Content: "Congratulations!\n\n" +
			"You correctly identified and reported a phishing email. This demonstrates " +
			"excellent security awareness!\n\n" +
			"Rewards:\n" +
			"- +15 Security Points\n" +
			"- Improved Trust Score\n" +
			"- Enhanced Security Badge Progress\n\n" +
			"Keep up the great work in protecting our organization!\n\n" +
			"Best regards,\nHoneyPhish Security Team",
	}
}

func misreportEmail(vendorID, id string, now time.Time) *Email {
	return &Email{
		ID:          "education-" + id,
		VendorID:    vendorID,
		Sender:      "HoneyPhish Security",
		SenderEmail: "security@honeyphish.com",
		Subject:     "Learning Opportunity: Email Analysis",
		Timestamp:   now,
		IsPhishing:  false,
		Type:        EmailMisreport,
		Content: "You reported a legitimate email as phishing. Let's learn from this!\n\n" +
			"How to identify legitimate emails:\n" +
			"- Check the sender's email domain\n" +
			"- Look for proper company branding\n" +
			"- Verify the content is relevant to your role\n" +
			"- Check for spelling and grammar\n\n" +
			"Remember: When in doubt, contact the sender through a separate channel to verify.\n\n" +
			"Keep learning,\nHoneyPhish Security Team",
	}
}
