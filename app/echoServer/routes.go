package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer/controller/booking"
	"github.com/roman3350/shareit/app/echoServer/controller/item"
	"github.com/roman3350/shareit/app/echoServer/controller/request"
	"github.com/roman3350/shareit/app/echoServer/controller/user"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	u := e.Group("/users")
	u.GET("", c.User.FindAll)
	u.GET("/:userId", c.User.FindByID)
	u.POST("", c.User.Create)
	u.PATCH("/:userId", c.User.Update)
	u.DELETE("/:userId", c.User.Delete)

	i := e.Group("/items")
	i.GET("", c.Item.FindByOwner)
	i.GET("/search", c.Item.Search)
	i.GET("/:itemId", c.Item.FindByID)
	i.POST("", c.Item.Create)
	i.PATCH("/:itemId", c.Item.Update)
	i.POST("/:itemId/comment", c.Item.CreateComment)
	i.DELETE("/:itemId", c.Item.Delete)

	b := e.Group("/bookings")
	b.GET("", c.Booking.ListByBooker)
	b.GET("/owner", c.Booking.ListByOwner)
	b.GET("/:bookingId", c.Booking.FindByID)
	b.POST("", c.Booking.Create)
	b.PATCH("/:bookingId", c.Booking.Respond)

	r := e.Group("/requests")
	r.GET("", c.Request.FindOwn)
	r.GET("/all", c.Request.FindAll)
	r.GET("/:requestId", c.Request.FindByID)
	r.POST("", c.Request.Create)
}
