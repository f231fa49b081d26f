package authController

import (
	"etutor/config"
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	"etutor/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup registers a new user (student by default, teacher on request)
func Signup(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if mobile already exists
	if reqData.Mobile != "" {
		if err := db.Where("mobile = ?", reqData.Mobile).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Mobile number is already registered!", nil)
		}
	}

	role := "STUDENT"
	if reqData.Role == "TEACHER" {
		role = "TEACHER"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Role:     role,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to signup user!", nil)
	}

	// Issue a mobile verification code when a number was supplied
	if newUser.Mobile != "" {
		otp := models.OTP{
			UserID:    newUser.ID,
			Code:      utils.GenerateOTP(),
			Reference: uuid.New().String(),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
		if err := db.Create(&otp).Error; err != nil {
			log.Printf("Error saving OTP: %v", err)
		} else {
			go func(mobile, code string) {
				if err := utils.SendOTPSMS(mobile, code); err != nil {
					log.Printf("Error sending OTP SMS: %v", err)
				}
			}(newUser.Mobile, otp.Code)
		}
	}

	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}(newUser.Email, newUser.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// Login authenticates a user and returns a JWT
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	now := time.Now()
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("last_login", now)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// VerifyOTP verifies a mobile number with the code sent at signup
func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Reference string `json:"reference"`
		Code      string `json:"code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var otp models.OTP
	if err := db.Where("reference = ? AND is_used = ?", reqData.Reference, false).First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Verification code not found!", nil)
	}

	if time.Now().After(otp.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Verification code has expired!", nil)
	}

	if otp.Code != reqData.Code {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid verification code!", nil)
	}

	if err := db.Model(&models.OTP{}).Where("id = ?", otp.ID).Update("is_used", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify code!", nil)
	}
	db.Model(&models.User{}).Where("id = ?", otp.UserID).Update("is_mobile_verified", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mobile number verified successfully!", nil)
}
