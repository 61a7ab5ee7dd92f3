package services

import "strings"

// AssistantReply is one canned answer together with the intent that matched.
type AssistantReply struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// AssistantService answers security questions from a fixed keyword-matched
// response table. Matching is first-hit over the intents in order; anything
// unmatched falls through to a general-advice reply. The client owns any
// typing-delay presentation.
type AssistantService struct{}

func NewAssistantService() *AssistantService {
	return &AssistantService{}
}

type assistantIntent struct {
	topic    string
	keywords []string
	message  string
}

func (s *AssistantService) Reply(message string) AssistantReply {
	lower := strings.ToLower(message)
	for _, intent := range assistantIntents {
		for _, kw := range intent.keywords {
			if strings.Contains(lower, kw) {
				return AssistantReply{Topic: intent.topic, Message: intent.message}
			}
		}
	}
	return AssistantReply{
		Topic: "general",
		Message: "I understand you're asking about \"" + message + "\". Here are some general cybersecurity best practices:\n\n" +
			"Core security principles:\n" +
			"- Keep software updated\n" +
			"- Use strong, unique passwords\n" +
			"- Enable MFA wherever possible\n" +
			"- Regular security training\n" +
			"- Backup data regularly\n\n" +
			"For your organization:\n" +
			"- Conduct regular security assessments\n" +
			"- Implement a security incident response plan\n" +
			"- Monitor for unusual activities\n" +
			"- Keep security policies updated\n\n" +
			"Is there a specific security topic you'd like me to elaborate on?",
	}
}

var assistantIntents = []assistantIntent{
	{
		topic:    "mfa",
		keywords: []string{"mfa", "multi-factor", "authentication"},
		message: "Multi-Factor Authentication (MFA) is crucial for security! Here's how to implement it:\n\n" +
			"1. Choose an MFA method: authenticator apps, SMS, or hardware tokens\n" +
			"2. Enable on all critical accounts: email, cloud services, admin panels\n" +
			"3. Backup codes: always save backup codes in a secure location\n" +
			"4. User training: educate your team on MFA importance\n\n" +
			"For your assessment, enabling MFA can increase your trust score by up to 20 points!",
	},
	{
		topic:    "phishing",
		keywords: []string{"phishing", "email"},
		message: "Great question about phishing protection! Here are key indicators to watch for:\n\n" +
			"Red flags:\n" +
			"- Urgent language (\"Act now!\", \"Account suspended\")\n" +
			"- Generic greetings (\"Dear Customer\")\n" +
			"- Suspicious sender addresses\n" +
			"- Unexpected attachments or links\n" +
			"- Grammar/spelling errors\n\n" +
			"Best practices:\n" +
			"- Hover over links to see actual URLs\n" +
			"- Verify sender through separate communication\n" +
			"- Use email security filters\n" +
			"- Regular phishing awareness training\n\n" +
			"Remember: when in doubt, don't click! Report suspicious emails instead.",
	},
	{
		topic:    "encryption",
		keywords: []string{"encryption", "data"},
		message: "Data encryption is fundamental to cybersecurity! Here's what you need to know:\n\n" +
			"Encryption types:\n" +
			"- At rest: encrypt stored data (AES-256 recommended)\n" +
			"- In transit: use TLS/SSL for data transmission\n" +
			"- End-to-end: for sensitive communications\n\n" +
			"Implementation steps:\n" +
			"1. Identify sensitive data locations\n" +
			"2. Choose appropriate encryption standards\n" +
			"3. Implement key management policies\n" +
			"4. Regular encryption audits\n\n" +
			"Proper encryption can significantly boost your security assessment score!",
	},
	{
		topic:    "assessment",
		keywords: []string{"assessment", "score"},
		message: "I can help you improve your security assessment score! Here are the highest-impact areas:\n\n" +
			"High impact (15-20 points each):\n" +
			"- Enable MFA across all systems\n" +
			"- Implement HTTPS with valid SSL certificates\n" +
			"- Encrypt data at rest and in transit\n\n" +
			"Medium impact (8-12 points each):\n" +
			"- Regular security training\n" +
			"- Incident response plan\n" +
			"- Data retention policies\n\n" +
			"Quick wins:\n" +
			"- Update SSL certificates\n" +
			"- Document security policies\n" +
			"- Regular backup testing\n\n" +
			"Would you like specific guidance on any of these areas?",
	},
}
