package utils

import (
	"etutor/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func sendEmail(toEmail, toName, subject, htmlBody string) error {
	from := mail.NewEmail("eTutor Ethiopia", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}

	log.Println("Email sent successfully to", toEmail)
	return nil
}

// SendWelcomeEmail sends a welcome email after signup
func SendWelcomeEmail(email, userName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome to eTutor Ethiopia!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your account has been created. Browse tutorials, take quizzes and track your learning progress.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">eTutor Ethiopia Team</p>
				</div>
			</body>
		</html>
	`, userName)

	return sendEmail(email, userName, "Welcome to eTutor Ethiopia", body)
}

// SendQuizPassedEmail notifies a student that they passed a quiz
func SendQuizPassedEmail(email, userName, quizTitle string, score int) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">🎉 Quiz Passed!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations! You passed the quiz:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<h1 style="text-align: center; color: #2196F3; font-size: 40px; margin: 20px 0;">%d%%</h1>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">eTutor Ethiopia Team</p>
				</div>
			</body>
		</html>
	`, userName, quizTitle, score)

	return sendEmail(email, userName, "Quiz Passed - eTutor Ethiopia", body)
}

// SendTutorialCompletedEmail notifies a student that they completed a tutorial
func SendTutorialCompletedEmail(email, userName, tutorialTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">🏆 Tutorial Completed</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have completed the tutorial:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, userName, tutorialTitle)

	return sendEmail(email, userName, "Tutorial Completed - eTutor Ethiopia", body)
}
