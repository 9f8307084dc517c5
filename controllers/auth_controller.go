package controllers

import (
	"net/http"

	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
type UpdateMeRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	resp.Created(c, gin.H{
		"id": user.ID, "email": user.Email, "firstName": user.FirstName,
		"lastName": user.LastName, "phoneNumber": user.PhoneNumber, "role": user.Role,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user": gin.H{
			"id": user.ID, "email": user.Email, "firstName": user.FirstName,
			"lastName": user.LastName, "phoneNumber": user.PhoneNumber, "role": user.Role,
		},
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.BadRequest(c, "user not found")
		return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "email": user.Email, "firstName": user.FirstName,
		"lastName": user.LastName, "phoneNumber": user.PhoneNumber, "role": user.Role,
	})
}

// PATCH /auth/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Auth.UpdateProfile(utils.CurrentUserID(c), req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "email": user.Email, "firstName": user.FirstName,
		"lastName": user.LastName, "phoneNumber": user.PhoneNumber, "role": user.Role,
	})
}
