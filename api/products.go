package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmerch/shopcore/pkg/models"
)

// addProduct handles POST /products
func (s *Server) addProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	product, err := s.products.Create(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "id": product.ID})
}

// listProducts handles GET /products
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// getProduct handles GET /products/:id
func (s *Server) getProduct(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct handles PUT /products/:id
func (s *Server) updateProduct(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.products.Update(c.Request.Context(), id, &req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// deleteProduct handles DELETE /products/:id
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
