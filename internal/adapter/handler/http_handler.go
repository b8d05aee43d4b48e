package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/core/service"
)

// HTTPHandler exposes the storefront to the view layer as a JSON API. Every
// call that touches storefront state runs on the event loop.
type HTTPHandler struct {
	store   *service.Storefront
	loop    *service.EventLoop
	notices *NoticeBoard
	logger  *zap.Logger
}

type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type AddItemRequest struct {
	ProductID *int `json:"productId" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type NavigateRequest struct {
	Page string `json:"page" binding:"required"`
}

type CartOverlayRequest struct {
	Open bool `json:"open"`
}

type ClearCartResponse struct {
	Cleared bool `json:"cleared"`
}

func NewHTTPHandler(store *service.Storefront, loop *service.EventLoop, notices *NoticeBoard, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		store:   store,
		loop:    loop,
		notices: notices,
		logger:  logger,
	}
}

// NewRouter builds the gin engine with CORS for the given origins and the
// session cookie middleware on /api.
func NewRouter(h *HTTPHandler, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.HealthCheck)

	api := r.Group("/api", sessionMiddleware())
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddItem)
		api.PUT("/cart/items/:id", h.SetQuantity)
		api.DELETE("/cart/items/:id", h.RemoveItem)
		api.DELETE("/cart", h.ClearCart)

		api.GET("/navigation", h.GetNavigation)
		api.PUT("/navigation", h.Navigate)
		api.PUT("/navigation/cart", h.SetCartOverlay)

		api.POST("/contact", h.SubmitContact)
		api.GET("/contact/submissions", h.ListSubmissions)

		api.GET("/notices", h.DrainNotices)
	}
	return r
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(c *gin.Context) {
	category := c.DefaultQuery("category", service.AllCategories)
	products := h.store.Search(c.Query("search"), category)
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: products})
}

func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	product, err := h.store.Catalog.Product(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: product})
}

func (h *HTTPHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: h.store.Catalog.Categories()})
}

func (h *HTTPHandler) GetCart(c *gin.Context) {
	var summary domain.CartSummary
	err := h.run(c, func(ctx context.Context) {
		summary = h.store.CartSummary()
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: summary})
}

func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	var item domain.CartItem
	var addErr error
	err := h.run(c, func(ctx context.Context) {
		item, addErr = h.store.AddToCart(ctx, *req.ProductID)
	})
	if err == nil {
		err = addErr
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Message: item.Name + " added to cart!", Data: item})
}

func (h *HTTPHandler) SetQuantity(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	var summary domain.CartSummary
	err := h.run(c, func(ctx context.Context) {
		h.store.UpdateQuantity(ctx, id, *req.Quantity)
		summary = h.store.CartSummary()
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: summary})
}

func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var summary domain.CartSummary
	err := h.run(c, func(ctx context.Context) {
		h.store.RemoveFromCart(ctx, id)
		summary = h.store.CartSummary()
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: summary})
}

func (h *HTTPHandler) ClearCart(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	c.Request = c.Request.WithContext(withConfirmation(c.Request.Context(), confirmed))

	var cleared bool
	err := h.run(c, func(ctx context.Context) {
		cleared = h.store.ClearCart(ctx)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !cleared {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: "confirmation required",
			Data:    ClearCartResponse{Cleared: false},
		})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: ClearCartResponse{Cleared: true}})
}

func (h *HTTPHandler) GetNavigation(c *gin.Context) {
	var state domain.NavigationState
	err := h.run(c, func(ctx context.Context) {
		state = h.store.Session(ctx, SessionFromContext(ctx)).State()
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: state})
}

func (h *HTTPHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	var state domain.NavigationState
	var navErr error
	err := h.run(c, func(ctx context.Context) {
		nav := h.store.Session(ctx, SessionFromContext(ctx))
		navErr = nav.Navigate(ctx, req.Page)
		state = nav.State()
	})
	if err == nil {
		err = navErr
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: state})
}

func (h *HTTPHandler) SetCartOverlay(c *gin.Context) {
	var req CartOverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	var state domain.NavigationState
	err := h.run(c, func(ctx context.Context) {
		nav := h.store.Session(ctx, SessionFromContext(ctx))
		if req.Open {
			nav.OpenCart()
		} else {
			nav.CloseCart()
		}
		state = nav.State()
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: state})
}

func (h *HTTPHandler) SubmitContact(c *gin.Context) {
	form := domain.NewContactForm()
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	var submission domain.Submission
	var submitErr error
	err := h.run(c, func(ctx context.Context) {
		submission, submitErr = h.store.SubmitContact(ctx, form)
	})
	if err == nil {
		err = submitErr
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Thank you! We'll get back to you within 24 hours.",
		Data:    submission,
	})
}

func (h *HTTPHandler) ListSubmissions(c *gin.Context) {
	var subs []domain.Submission
	var listErr error
	err := h.run(c, func(ctx context.Context) {
		subs, listErr = h.store.Contact.Submissions(ctx)
	})
	if err == nil {
		err = listErr
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: subs})
}

func (h *HTTPHandler) DrainNotices(c *gin.Context) {
	notices := h.notices.Drain(SessionFromContext(c.Request.Context()))
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: notices})
}

func (h *HTTPHandler) run(c *gin.Context, fn func(ctx context.Context)) error {
	return h.loop.Do(c.Request.Context(), fn)
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid product id"})
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		status = http.StatusNotFound
		message = "product not found"
	case errors.Is(err, service.ErrOutOfStock):
		status = http.StatusConflict
		message = "Sorry, this item is currently out of stock"
	case errors.Is(err, service.ErrUnknownPage):
		status = http.StatusBadRequest
		message = "unknown page"
	case errors.Is(err, service.ErrMissingFields):
		status = http.StatusUnprocessableEntity
		message = "Please fill in all required fields"
	case errors.Is(err, service.ErrInvalidEmail):
		status = http.StatusUnprocessableEntity
		message = "Please enter a valid email address"
	case errors.Is(err, service.ErrInvalidOrderType):
		status = http.StatusUnprocessableEntity
		message = "Please choose a valid inquiry type"
	case errors.Is(err, service.ErrLoopClosed):
		status = http.StatusServiceUnavailable
		message = "shutting down"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
		message = "request cancelled"
	default:
		h.logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}

	c.JSON(status, APIResponse{Success: false, Message: message})
}
