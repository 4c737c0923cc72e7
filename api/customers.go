package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmerch/shopcore/pkg/models"
)

// addCustomer handles POST /customers
func (s *Server) addCustomer(c *gin.Context) {
	var req models.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	customer, err := s.customers.Create(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer added", "id": customer.ID})
}

// listCustomers handles GET /customers
func (s *Server) listCustomers(c *gin.Context) {
	list, err := s.customers.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// getCustomer handles GET /customers/:id
func (s *Server) getCustomer(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	customer, err := s.customers.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// updateCustomer handles PUT /customers/:id
func (s *Server) updateCustomer(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var req models.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.customers.Update(c.Request.Context(), id, &req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

// deleteCustomer handles DELETE /customers/:id
func (s *Server) deleteCustomer(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.customers.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
