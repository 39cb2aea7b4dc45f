package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ihza6661/computer-store-rest-api-sub000/controllers"
)

// RegisterRoutes wires all HTTP endpoints to their handlers.
func RegisterRoutes(
	r *gin.Engine,
	products *controllers.ProductHandler,
	categories *controllers.CategoryHandler,
	images *controllers.ImageHandler,
	imports *controllers.ImportHandler,
	contacts *controllers.ContactHandler,
	admins *controllers.AdminHandler,
) {
	api := r.Group("/api")

	// Public endpoints
	api.POST("/contact", contacts.Submit)

	admin := api.Group("/admin")
	{
		productRoutes := admin.Group("/products")
		{
			productRoutes.GET("", products.List)
			productRoutes.GET("/:id", products.Get)
			productRoutes.POST("", products.Create)
			productRoutes.PUT("/:id", products.Update)
			productRoutes.DELETE("/:id", products.Delete)

			productRoutes.POST("/import/preview", imports.Preview)
			productRoutes.POST("/import/store", imports.Store)
			productRoutes.GET("/import/status/:jobId", imports.Status)

			productRoutes.POST("/:id/images", images.Upload)
			productRoutes.DELETE("/:id/images/:imageId", images.Delete)
			productRoutes.PUT("/:id/images/:imageId/primary", images.SetPrimary)
		}

		categoryRoutes := admin.Group("/categories")
		{
			categoryRoutes.GET("", categories.List)
			categoryRoutes.GET("/:id", categories.Get)
			categoryRoutes.POST("", categories.Create)
			categoryRoutes.PUT("/:id", categories.Update)
			categoryRoutes.DELETE("/:id", categories.Delete)
		}

		contactRoutes := admin.Group("/contacts")
		{
			contactRoutes.GET("", contacts.List)
			contactRoutes.PUT("/:id/read", contacts.MarkRead)
			contactRoutes.DELETE("/:id", contacts.Delete)
		}

		adminUserRoutes := admin.Group("/users")
		{
			adminUserRoutes.GET("", admins.List)
			adminUserRoutes.POST("", admins.Create)
			adminUserRoutes.PUT("/:id", admins.Update)
			adminUserRoutes.DELETE("/:id", admins.Delete)
		}
	}
}
