package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every handler the route registry needs.
type HandlerBundle struct {
	SearchHandler        gin.HandlerFunc
	NeighborhoodsHandler gin.HandlerFunc
}
