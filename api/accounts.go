package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmerch/shopcore/pkg/models"
)

// addAccount handles POST /customer_accounts
func (s *Server) addAccount(c *gin.Context) {
	var req models.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	account, err := s.accounts.Create(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account added", "id": account.ID})
}

// listAccounts handles GET /customer_accounts
func (s *Server) listAccounts(c *gin.Context) {
	list, err := s.accounts.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// getAccount handles GET /customer_accounts/:id
func (s *Server) getAccount(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	account, err := s.accounts.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccount handles PUT /customer_accounts/:id
func (s *Server) updateAccount(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var req models.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.accounts.Update(c.Request.Context(), id, &req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account updated"})
}

// deleteAccount handles DELETE /customer_accounts/:id
func (s *Server) deleteAccount(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.accounts.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
