package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmerch/shopcore/pkg/models"
)

// placeOrder handles POST /orders
func (s *Server) placeOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	order, err := s.orders.Place(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "id": order.ID})
}

// listOrders handles GET /orders
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// getOrder handles GET /orders/:id
func (s *Server) getOrder(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	order, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// trackOrder handles GET /order_product/:id, returning the order with its
// products expanded
func (s *Server) trackOrder(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	order, err := s.orders.Track(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrder handles PUT /orders/:id
func (s *Server) updateOrder(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.orders.Update(c.Request.Context(), id, &req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

// deleteOrder handles DELETE /orders/:id
func (s *Server) deleteOrder(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.orders.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
