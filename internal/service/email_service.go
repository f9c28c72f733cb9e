package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordbuilder/internal/models"
)

// maxEmailedRecommendations caps how many recommendations go into a
// report email; the full list stays on the dashboard
const maxEmailedRecommendations = 3

// EmailService sends progress report emails via Amazon SES. When no
// sender address is configured the service runs disabled and sends
// turn into log lines.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport emails a summary of a learner's report to a
// teacher
func (s *EmailService) SendProgressReport(ctx context.Context, toEmail string, report *models.SessionReport) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): progress report for %s to %s", report.SessionID, toEmail)
		return nil
	}

	subject := fmt.Sprintf("Word Builder progress report: %s", report.DisplayName)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { border-collapse: collapse; width: 100%%; margin: 15px 0; }
		td { padding: 8px; border-bottom: 1px solid #ddd; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Progress Report</h1>
		</div>
		<div class="content">
			<p>Progress report for <strong>%s</strong>, generated %s.</p>
			<table>
				<tr><td>Total attempts</td><td>%d</td></tr>
				<tr><td>Accuracy</td><td>%s</td></tr>
				<tr><td>Words completed</td><td>%d</td></tr>
				<tr><td>Best streak</td><td>%d</td></tr>
				<tr><td>Time played</td><td>%s</td></tr>
				<tr><td>Accuracy trend</td><td>%s</td></tr>
				<tr><td>Speed trend</td><td>%s</td></tr>
			</table>
			%s
			<p>The full report is available on the dashboard:<br>%s</p>
		</div>
		<div class="footer">
			<p>This is an automated email from Word Builder. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`,
		report.DisplayName,
		report.GeneratedAt.Format("2 January 2006"),
		report.Summary.TotalAttempts,
		formatAccuracy(report.Summary.Accuracy),
		report.Summary.WordsCompleted,
		report.Summary.BestStreak,
		formatPlayTime(report.Summary.TimeSpentSeconds),
		report.Analytics.AccuracyTrend,
		report.Analytics.SpeedTrend,
		recommendationsHTML(report.Recommendations),
		s.appBaseURL,
	)

	textBody := fmt.Sprintf(`Progress report for %s, generated %s.

Total attempts: %d
Accuracy: %s
Words completed: %d
Best streak: %d
Time played: %s
Accuracy trend: %s
Speed trend: %s
%s
The full report is available on the dashboard: %s

---
This is an automated email from Word Builder. Please do not reply.
`,
		report.DisplayName,
		report.GeneratedAt.Format("2 January 2006"),
		report.Summary.TotalAttempts,
		formatAccuracy(report.Summary.Accuracy),
		report.Summary.WordsCompleted,
		report.Summary.BestStreak,
		formatPlayTime(report.Summary.TimeSpentSeconds),
		report.Analytics.AccuracyTrend,
		report.Analytics.SpeedTrend,
		recommendationsText(report.Recommendations),
		s.appBaseURL,
	)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}

func recommendationsHTML(recs []models.Recommendation) string {
	if len(recs) == 0 {
		return "<p>No specific practice recommendations at the moment. Keep playing!</p>"
	}
	var b strings.Builder
	b.WriteString("<p><strong>Suggested next steps:</strong></p>\n<ul>\n")
	for i, rec := range recs {
		if i == maxEmailedRecommendations {
			break
		}
		fmt.Fprintf(&b, "<li>%s (try: %s)</li>\n", rec.Strategy, strings.Join(rec.Activities, ", "))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func recommendationsText(recs []models.Recommendation) string {
	if len(recs) == 0 {
		return "\nNo specific practice recommendations at the moment. Keep playing!\n"
	}
	var b strings.Builder
	b.WriteString("\nSuggested next steps:\n")
	for i, rec := range recs {
		if i == maxEmailedRecommendations {
			break
		}
		fmt.Fprintf(&b, "- %s (try: %s)\n", rec.Strategy, strings.Join(rec.Activities, ", "))
	}
	return b.String()
}

func formatAccuracy(accuracy float64) string {
	return fmt.Sprintf("%.0f%%", accuracy*100)
}

func formatPlayTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%d hours %d minutes", minutes/60, minutes%60)
}
