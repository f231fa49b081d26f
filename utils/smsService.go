package utils

import (
	"etutor/config"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendOTPSMS delivers a verification code through the configured SMS gateway
func SendOTPSMS(mobile, otp string) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.SmsApiKey).
		SetBody(map[string]string{
			"to":      mobile,
			"message": fmt.Sprintf("Your eTutor verification code is %s. Valid for 10 minutes.", otp),
		}).
		Post(config.AppConfig.SmsApiUrl)

	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() >= 400 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
