package api

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"pharmacy/pkg/config"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"
	"pharmacy/pkg/remito"
	"pharmacy/pkg/service"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	BaseURL = "/api/v0/pharmacy"

	CartCookie       = "cart_id"
	cartCookieMaxAge = 30 * 24 * 60 * 60
)

type API struct {
	BaseURL   string
	logger    *zap.Logger
	config    *config.APIServer
	formatter *pricing.Formatter
	swagger   *openapi3.T

	catalog service.Catalog
	carts   service.Carts
	orders  service.Orders
}

var _ ServerInterface = (*API)(nil)

func NewAPI(
	config *config.APIServer,
	logger *zap.Logger,
	catalog service.Catalog,
	carts service.Carts,
	orders service.Orders,
) (*API, error) {
	log := logger.Named("PharmacyAPI")
	swagger, err := GetSwagger()
	if err != nil {
		log.Sugar().Errorf("can't load api spec: (%s)", err.Error())
		return nil, err
	}
	api := &API{
		BaseURL:   BaseURL,
		config:    config,
		logger:    log,
		formatter: pricing.NewFormatter(config.Pricing.CurrencySymbol),
		swagger:   swagger,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
	}
	return api, nil
}

func (api *API) RegisterHandlers(e gin.IRouter) {
	RegisterHandlersWithOptions(e, api, GinServerOptions{
		BaseURL:      api.BaseURL,
		ErrorHandler: api.handleParamError,
	})
}

func (api *API) handleParamError(c *gin.Context, err error, status int) {
	c.AbortWithStatusJSON(status, Error{Message: err.Error()})
}

func (api *API) mapErrorToStatus(err error) int {
	switch {
	case errors.ErrorIs(err, errors.ErrInvalidInput),
		errors.ErrorIs(err, errors.ErrUnsupportedFile),
		errors.ErrorIs(err, errors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.ErrorIs(err, errors.ErrProductNotFound),
		errors.ErrorIs(err, errors.ErrOrderNotFound),
		errors.ErrorIs(err, errors.ErrRemitoNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (api *API) abortWithError(c *gin.Context, err error) {
	status := api.mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		api.logger.Sugar().Errorf("request %s %s failed: (%s)", c.Request.Method, c.Request.URL.Path, err.Error())
		msg = errors.ErrInternal.Error()
	}
	c.AbortWithStatusJSON(status, Error{Message: msg})
}

// bind decodes a JSON body into req and validates it.
func (api *API) bind(c *gin.Context, req validation.Validatable) bool {
	return api.bindBody(c, req, false)
}

// bindOptional is bind for a body that may be omitted, an empty body is an empty request.
func (api *API) bindOptional(c *gin.Context, req validation.Validatable) bool {
	return api.bindBody(c, req, true)
}

func (api *API) bindBody(c *gin.Context, req validation.Validatable, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil && !(optional && errors.ErrorIs(err, io.EOF)) {
		api.abortWithError(c, fmt.Errorf("%w: malformed body: %s", errors.ErrInvalidInput, err.Error()))
		return false
	}
	if err := req.Validate(); err != nil {
		api.abortWithError(c, fmt.Errorf("%w: %s", errors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

func (api *API) margin(m *float64) (decimal.Decimal, error) {
	if m == nil {
		return decimal.NewFromFloat(api.config.Pricing.DefaultMargin), nil
	}
	if math.IsNaN(*m) || math.IsInf(*m, 0) {
		return decimal.Zero, fmt.Errorf("%w: margin=%v is not a finite number", errors.ErrInvalidInput, *m)
	}
	return decimal.NewFromFloat(*m), nil
}

// cartID returns the cart id from the cookie, a new id is issued when there is none.
func (api *API) cartID(c *gin.Context) string {
	id, err := c.Cookie(CartCookie)
	if err == nil && id != "" {
		return id
	}
	id = uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCookie, id, cartCookieMaxAge, "/", "", false, true)
	return id
}

func (r QuoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BasePrice, validation.Min(0.0)),
		validation.Field(&r.Margin, validation.Min(-100.0)),
	)
}

func (r RepriceItem) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.BasePrice, validation.Min(0.0)),
	)
}

func (r RepriceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Margin, validation.Min(-100.0)),
		validation.Field(&r.Items),
		validation.Field(&r.Overrides, validation.By(validateOverrides)),
	)
}

func validateOverrides(value interface{}) error {
	overrides, _ := value.(*map[string]float64)
	if overrides == nil {
		return nil
	}
	for code, m := range *overrides {
		if m < -100 {
			return fmt.Errorf("margin for code=%s must be no less than -100", code)
		}
	}
	return nil
}

func (r AddCartItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(0, models.MaxCodeLength)),
		validation.Field(&r.Qty, validation.Max(service.MaxQty)),
		validation.Field(&r.Margin, validation.Min(-100.0)),
	)
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientName, validation.Length(0, 255)),
		validation.Field(&r.ClientEmail, validation.Length(0, 255), is.EmailFormat),
	)
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func (api *API) productToResponse(p *models.PricedProduct) Product {
	return Product{
		Code:                p.Code,
		Name:                p.Name,
		Description:         p.Description,
		Cost:                money(p.Cost),
		Expiration:          p.Expiration,
		Margin:              money(p.Margin),
		FinalPrice:          money(p.FinalPrice),
		FinalPriceFormatted: api.formatter.Format(p.FinalPrice),
	}
}

func lineItemsToResponse(items []*models.LineItem) []LineItem {
	res := make([]LineItem, 0, len(items))
	for _, item := range items {
		res = append(res, LineItem{
			Code:       item.Code,
			Name:       item.Name,
			Expiration: item.Expiration,
			Cost:       money(item.Cost),
			Margin:     money(item.Margin),
			FinalPrice: money(item.FinalPrice),
			Qty:        item.Qty,
			Subtotal:   money(item.Subtotal()),
		})
	}
	return res
}

func (api *API) cartToResponse(cart *models.Cart) Cart {
	total := cart.Total()
	return Cart{
		Items:          lineItemsToResponse(cart.Items),
		Total:          money(total),
		TotalFormatted: api.formatter.Format(total),
	}
}

func (api *API) orderToResponse(order *models.Order) Order {
	return Order{
		Id:             order.ID,
		ClientName:     order.ClientName,
		ClientEmail:    order.ClientEmail,
		CreatedAt:      order.CreatedAt,
		Items:          lineItemsToResponse(order.Items),
		Total:          money(order.Total),
		TotalFormatted: api.formatter.Format(order.Total),
		Remito:         remito.FileName(order.ID),
	}
}

// GetStats (GET /stats)
func (api *API) GetStats(c *gin.Context) {
	stats, err := api.catalog.Stats(c)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, Stats{
		Products:      stats.Products,
		Orders:        stats.Orders,
		Clients:       stats.Clients,
		SalesToday:    stats.SalesToday,
		DefaultMargin: money(stats.DefaultMargin),
	})
}

// ListProducts (GET /products)
func (api *API) ListProducts(c *gin.Context, params ListProductsParams) {
	margin, err := api.margin(params.Margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	query := ""
	if params.Q != nil {
		query = *params.Q
	}
	products, err := api.catalog.List(c, query, margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	res := make([]Product, 0, len(products))
	for _, p := range products {
		res = append(res, api.productToResponse(p))
	}
	c.JSON(http.StatusOK, res)
}

// GetProduct (GET /products/{code})
func (api *API) GetProduct(c *gin.Context, code ProductCode, params GetProductParams) {
	margin, err := api.margin(params.Margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	product, err := api.catalog.Get(c, code, margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.productToResponse(product))
}

// ImportProducts (POST /products/import)
func (api *API) ImportProducts(c *gin.Context) {
	if api.config.Catalog.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, api.config.Catalog.MaxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		api.abortWithError(c, fmt.Errorf("%w: can't read uploaded file: %s", errors.ErrInvalidInput, err.Error()))
		return
	}
	f, err := fh.Open()
	if err != nil {
		api.abortWithError(c, fmt.Errorf("can't open uploaded file=%s: %w", fh.Filename, err))
		return
	}
	defer f.Close()

	res, err := api.catalog.Import(c, f, fh.Filename)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportResult{
		Imported: res.Imported,
		Skipped:  res.Skipped,
	})
}

// QuotePrice (POST /pricing/quote)
func (api *API) QuotePrice(c *gin.Context) {
	var req QuotePriceJSONRequestBody
	if !api.bind(c, &req) {
		return
	}
	finalPrice, err := pricing.CalculateFinalPrice(req.BasePrice, req.Margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, Quote{
		BasePrice:  req.BasePrice,
		Margin:     req.Margin,
		FinalPrice: finalPrice,
		Formatted:  api.formatter.FormatFloat(finalPrice),
	})
}

// RepricePriceList (POST /pricing/reprice)
func (api *API) RepricePriceList(c *gin.Context) {
	var req RepricePriceListJSONRequestBody
	if !api.bind(c, &req) {
		return
	}

	items := make([]pricing.Item, 0, len(req.Items))
	for _, item := range req.Items {
		description := ""
		if item.Description != nil {
			description = *item.Description
		}
		items = append(items, pricing.Item{
			Code:        item.Code,
			Description: description,
			BasePrice:   decimal.NewFromFloat(item.BasePrice),
		})
	}
	overrides := make(map[string]decimal.Decimal)
	if req.Overrides != nil {
		for code, m := range *req.Overrides {
			overrides[code] = decimal.NewFromFloat(m)
		}
	}

	priced, err := pricing.Reprice(items, decimal.NewFromFloat(req.Margin), overrides)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	res := make([]RepricedItem, 0, len(priced))
	for _, p := range priced {
		res = append(res, RepricedItem{
			Code:        p.Code,
			Description: p.Description,
			BasePrice:   money(p.BasePrice),
			Margin:      money(p.Margin),
			FinalPrice:  money(p.FinalPrice),
			Formatted:   api.formatter.Format(p.FinalPrice),
		})
	}
	c.JSON(http.StatusOK, res)
}

// GetCart (GET /cart)
func (api *API) GetCart(c *gin.Context) {
	cart, err := api.carts.Get(c, api.cartID(c))
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.cartToResponse(cart))
}

// AddCartItem (POST /cart/items)
func (api *API) AddCartItem(c *gin.Context) {
	var req AddCartItemJSONRequestBody
	if !api.bind(c, &req) {
		return
	}
	margin, err := api.margin(req.Margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}
	cart, err := api.carts.Add(c, api.cartID(c), req.Code, qty, margin)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.cartToResponse(cart))
}

// ClearCart (DELETE /cart)
func (api *API) ClearCart(c *gin.Context) {
	if err := api.carts.Clear(c, api.cartID(c)); err != nil {
		api.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout (POST /checkout)
func (api *API) Checkout(c *gin.Context) {
	var req CheckoutJSONRequestBody
	if !api.bindOptional(c, &req) {
		return
	}
	var name, email string
	if req.ClientName != nil {
		name = *req.ClientName
	}
	if req.ClientEmail != nil {
		email = *req.ClientEmail
	}
	order, err := api.orders.Checkout(c, api.cartID(c), name, email)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.orderToResponse(order))
}

// ListOrders (GET /orders)
func (api *API) ListOrders(c *gin.Context) {
	orders, err := api.orders.List(c)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	res := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summary := OrderSummary{
			Id:         o.ID,
			ClientName: o.ClientName,
			CreatedAt:  o.CreatedAt,
			Total:      money(o.Total),
		}
		if o.Remito != "" {
			name := o.Remito
			summary.Remito = &name
		}
		res = append(res, summary)
	}
	c.JSON(http.StatusOK, res)
}

// GetOrder (GET /orders/{order_id})
func (api *API) GetOrder(c *gin.Context, orderId OrderId) {
	order, err := api.orders.Get(c, orderId)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.orderToResponse(order))
}

// GetRemito (GET /remitos/{name})
func (api *API) GetRemito(c *gin.Context, name RemitoName) {
	path, err := api.orders.RemitoPath(name)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.FileAttachment(path, name)
}

// GetOpenAPI (GET /openapi.json)
func (api *API) GetOpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, api.swagger)
}
