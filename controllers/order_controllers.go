package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/digiadi/digiadi-backend/kds"
	"github.com/digiadi/digiadi-backend/models"
	"github.com/digiadi/digiadi-backend/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// orderWithItems flattens the order columns and appends its items, the shape
// the list endpoint returns per order.
type orderWithItems struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

// CreateOrder opens a service cycle on a table. The table row is upserted
// (re-activating it when it was previously closed), any order still active on
// that table is closed, and a fresh order is inserted. All three writes run
// in one transaction so the table and order state cannot diverge.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableID uint `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.TableID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_id is required"))
		return
	}

	now := time.Now()
	order := models.Order{
		TableID:   req.TableID,
		IsActive:  true,
		IsReady:   false,
		CreatedAt: now,
	}
	table := models.Table{
		ID:        req.TableID,
		IsActive:  true,
		IsReady:   false,
		CreatedAt: now,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_active":    true,
				"is_ready":     false,
				"created_at":   now,
				"completed_at": nil,
			}),
		}).Create(&table).Error; err != nil {
			return err
		}

		// one active order per table: close anything still open
		if err := tx.Model(&models.Order{}).
			Where("table_id = ? AND is_active = ?", req.TableID, true).
			Updates(map[string]interface{}{
				"is_active":    false,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.OrdersCreatedTotal.Inc()
	kds.BroadcastOrderCreate(order)
	kds.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Order %d created for table %d", order.ID, order.TableID)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "order created",
		"order_id": order.ID,
	})
}

// AddItem appends one line to an order. waiter_id is optional: when absent or
// non-positive, an arbitrary user with the waiter role is substituted, or
// null when none exists. The order itself is not looked up first; a stale
// order_id is the caller's problem.
func (oc *OrderController) AddItem(c *gin.Context) {
	// the id feeds an unsigned column, so a negative value must be rejected
	// here rather than wrapped
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil || orderID <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Name       *string  `json:"name"`
		Price      *float64 `json:"price"`
		Quantity   *int     `json:"quantity"`
		CategoryID *uint    `json:"category_id"`
		WaiterID   *int     `json:"waiter_id"`
		WaiterName *string  `json:"waiter_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var missing []string
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if req.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if req.CategoryID == nil {
		missing = append(missing, "category_id")
	}
	if req.WaiterName == nil {
		missing = append(missing, "waiter_name")
	}
	if len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")))
		return
	}

	var waiterID *uint
	if req.WaiterID != nil && *req.WaiterID > 0 {
		id := uint(*req.WaiterID)
		waiterID = &id
	} else {
		var waiter models.User
		if err := oc.DB.Where("role = ?", models.RoleWaiter).First(&waiter).Error; err == nil {
			waiterID = &waiter.ID
		}
	}

	item := models.OrderItem{
		OrderID:    uint(orderID),
		Name:       *req.Name,
		Price:      *req.Price,
		Quantity:   *req.Quantity,
		CategoryID: *req.CategoryID,
		WaiterID:   waiterID,
		WaiterName: *req.WaiterName,
	}

	if err := oc.DB.Create(&item).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.OrderItemsAddedTotal.Inc()
	kds.BroadcastOrderItemAdd(item)

	c.JSON(http.StatusCreated, gin.H{"message": "item added"})
}

// GetOrderByID -> the order row plus every item attached to it, active or not.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondInternal(c, err)
		return
	}

	var items []models.OrderItem
	if err := oc.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	if items == nil {
		items = []models.OrderItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// MarkReady flags the order ready for serving. The table's is_ready flag is
// deliberately left alone; it only changes on the complete path.
func (oc *OrderController) MarkReady(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	res := oc.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("is_ready", true)
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	kds.BroadcastOrderReady(uint(orderID))

	c.JSON(http.StatusOK, gin.H{"message": "order marked ready"})
}

// CompleteOrder closes the order and its table in one transaction: the order
// goes inactive with a completion timestamp, then the owning table is reset
// to closed.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	now := time.Now()
	var tableID uint

	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		tableID = order.TableID

		if err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"is_active":    false,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Table{}).
			Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"is_active":    false,
				"is_ready":     false,
				"completed_at": now,
			}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondInternal(c, txErr)
		return
	}

	utils.OrdersCompletedTotal.Inc()
	kds.BroadcastOrderComplete(uint(orderID), tableID)

	utils.InfoLogger.Printf("Order %d completed, table %d closed", orderID, tableID)
	c.JSON(http.StatusOK, gin.H{"message": "order completed and table closed"})
}

// DeleteOrder purges an order and its items. The table id is read before the
// delete so the table still gets closed afterwards.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	now := time.Now()
	var tableID uint

	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		tableID = order.TableID

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}

		return tx.Model(&models.Table{}).
			Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"is_active":    false,
				"is_ready":     false,
				"completed_at": now,
			}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondInternal(c, txErr)
		return
	}

	kds.BroadcastOrderDelete(uint(orderID), tableID)

	utils.InfoLogger.Printf("Order %d deleted, table %d closed", orderID, tableID)
	c.JSON(http.StatusOK, gin.H{"message": "order deleted and table closed"})
}

// GetActiveOrders -> every active order, newest first, each with its items.
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	result := make([]orderWithItems, 0, len(orders))
	for _, order := range orders {
		var items []models.OrderItem
		if err := oc.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			utils.RespondInternal(c, err)
			return
		}
		if items == nil {
			items = []models.OrderItem{}
		}
		result = append(result, orderWithItems{Order: order, Items: items})
	}

	c.JSON(http.StatusOK, result)
}
