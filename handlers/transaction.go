package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"emjay/middleware"
	"emjay/models"
	"emjay/services/transaction"
	"emjay/utils"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Service transaction.TransactionService
	Now     func() time.Time
}

func NewTransactionHandler(svc transaction.TransactionService) *TransactionHandler {
	return &TransactionHandler{Service: svc}
}

func (h *TransactionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *TransactionHandler) CreateTransactionHandler(c *gin.Context) {
	var in transaction.CreateTransactionInput
	if !bindJSON(c, &in) {
		return
	}
	id, err := h.Service.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transactionId": id})
}

func (h *TransactionHandler) UpdateTransactionStatusHandler(c *gin.Context) {
	var req struct {
		Status models.TransactionStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.Service.UpdateTransactionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) GetTransactionHandler(c *gin.Context) {
	tx, err := h.Service.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ListTransactionsHandler accepts ?status=&limit=&offset=.
func (h *TransactionHandler) ListTransactionsHandler(c *gin.Context) {
	filter := models.TransactionFilter{Status: models.TransactionStatus(c.Query("status"))}
	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		utils.RespondError(c, err)
		return
	}

	txs, err := h.Service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *TransactionHandler) CreateAvailedServiceHandler(c *gin.Context) {
	var req struct {
		ServiceID     string               `json:"serviceId" binding:"required"`
		Price         float64              `json:"price"`
		ServiceCharge models.ServiceCharge `json:"serviceCharge"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Service.CreateAvailedService(c.Request.Context(), c.Param("id"), req.ServiceID, req.Price, req.ServiceCharge)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": id})
}

func (h *TransactionHandler) GetAvailedServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetAvailedService(c.Request.Context(), c.Param("id"), c.Param("availedId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *TransactionHandler) UpdateAvailedServiceHandler(c *gin.Context) {
	var u transaction.AvailedUpdate
	if !bindJSON(c, &u) {
		return
	}
	id, err := h.Service.UpdateAvailedService(c.Request.Context(), c.Param("id"), c.Param("availedId"), u)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": id})
}

// GetStatisticsHandler accepts ?filter=daily|weekly|monthly|yearly&end=YYYY-MM-DD.
func (h *TransactionHandler) GetStatisticsHandler(c *gin.Context) {
	end, err := transaction.ParseReportDate("end", c.Query("end"), h.now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	filter := models.StatisticsFilter(c.DefaultQuery("filter", string(models.FilterDaily)))

	stats, err := h.Service.GetStatistics(c.Request.Context(), filter, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetSalesReportHandler defaults to the seven days ending today.
func (h *TransactionHandler) GetSalesReportHandler(c *gin.Context) {
	end, err := transaction.ParseReportDate("end", c.Query("end"), h.now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	start, err := transaction.ParseReportDate("start", c.Query("start"), end.AddDate(0, 0, -6))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	report, err := h.Service.GetSalesReport(c.Request.Context(), start, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCompletedSummaryHandler accepts ?start=&end=&customerId=&employeeIds=a,b.
// The range defaults to the 30 days ending today.
func (h *TransactionHandler) GetCompletedSummaryHandler(c *gin.Context) {
	end, err := transaction.ParseReportDate("end", c.Query("end"), h.now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	start, err := transaction.ParseReportDate("start", c.Query("start"), end.AddDate(0, 0, -29))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filter := models.CompletedFilter{Start: start, End: end, CustomerID: c.Query("customerId")}
	if raw := c.Query("employeeIds"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.EmployeeIDs = append(filter.EmployeeIDs, id)
			}
		}
	}

	summary, err := h.Service.GetCompletedSummary(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetFreeWashEligibilityHandler serves staff and the customer themselves.
func (h *TransactionHandler) GetFreeWashEligibilityHandler(c *gin.Context) {
	customerID := c.Param("id")
	if c.GetString(middleware.ContextRole) == utils.RoleCustomer && c.GetString(middleware.ContextSubject) != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	eligibility, err := h.Service.GetFreeWashEligibility(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibility)
}

func queryInt(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, utils.NewValidationError(key, key+" must be a non-negative integer")
	}
	return n, nil
}
