package handlers

import (
	"net/http"

	"emjay/services/account"
	"emjay/utils"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	Service account.AccountService
}

func NewAccountHandler(svc account.AccountService) *AccountHandler {
	return &AccountHandler{Service: svc}
}

func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		FCMToken string `json:"fcmToken"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.Login(c.Request.Context(), req.Username, req.Password, req.FCMToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
