package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	dispatcher services.DispatcherService
}

func NewCustomerHandler(d services.DispatcherService) *CustomerHandler {
	return &CustomerHandler{dispatcher: d}
}

// GetCustomers lists customers; ?search= matches name or phone.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers := h.dispatcher.Snapshot().Customers
	if term := strings.ToLower(strings.TrimSpace(c.Query("search"))); term != "" {
		customers = lo.Filter(customers, func(cu models.Customer, _ int) bool {
			return strings.Contains(strings.ToLower(cu.Name), term) || strings.Contains(cu.Phone, term)
		})
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer registers a customer with a unique phone number.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var cmd state.AddCustomer
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add customer")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Customers[0])
}

type offerRequest struct {
	Message string `json:"message"`
}

// SendOffer broadcasts a promotional message to every customer. Delivery is
// simulated: each send is logged along with its WhatsApp link.
func (h *CustomerHandler) SendOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		utils.RespondValidationFailed(c, "offer message is required")
		return
	}

	customers := h.dispatcher.Snapshot().Customers
	recipients := lo.Map(customers, func(cu models.Customer, _ int) models.OfferRecipient {
		return models.OfferRecipient{
			CustomerID:  cu.ID,
			Name:        cu.Name,
			Phone:       cu.Phone,
			WhatsAppURL: WhatsAppURL(cu.Phone, message),
		}
	})
	for _, r := range recipients {
		utils.LogInfo("Simulated offer send", map[string]interface{}{"customer_id": r.CustomerID, "phone": r.Phone})
	}
	utils.LogInfo("Offer broadcast queued", map[string]interface{}{"recipients": len(recipients)})

	c.JSON(http.StatusAccepted, models.OfferBroadcast{Message: message, Queued: len(recipients), Recipients: recipients})
}

// WhatsAppURL is a click-to-chat link that pre-fills text for phone.
func WhatsAppURL(phone, text string) string {
	return "https://wa.me/" + url.PathEscape(phone) + "?text=" + url.QueryEscape(text)
}
