package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/models"
)

var gbp = accounting.Accounting{Symbol: "£", Precision: 2}

func FormatMoney(amount decimal.Decimal) string {
	return gbp.FormatMoneyDecimal(amount)
}

var statusEmojis = map[string]string{
	models.OrderStatusPending:    "⏳",
	models.OrderStatusConfirmed:  "✅",
	models.OrderStatusProcessing: "🔄",
	models.OrderStatusShipped:    "🚚",
	models.OrderStatusDelivered:  "📦",
	models.OrderStatusCancelled:  "❌",
}

var statusMessages = map[string]string{
	models.OrderStatusPending:    "Your order is pending and will be reviewed shortly.",
	models.OrderStatusConfirmed:  "Great news! Your order has been confirmed and is being prepared.",
	models.OrderStatusProcessing: "Your order is currently being processed.",
	models.OrderStatusShipped:    "Your order has been shipped and is on its way to you!",
	models.OrderStatusDelivered:  "Your order has been delivered. We hope you enjoy your purchase!",
	models.OrderStatusCancelled:  "Your order has been cancelled. If you have questions, please contact us.",
}

type statusColor struct {
	bg   string
	text string
}

var statusColors = map[string]statusColor{
	models.OrderStatusPending:    {"#fef3c7", "#92400e"},
	models.OrderStatusConfirmed:  {"#dbeafe", "#1e40af"},
	models.OrderStatusProcessing: {"#e0e7ff", "#3730a3"},
	models.OrderStatusShipped:    {"#ede9fe", "#5b21b6"},
	models.OrderStatusDelivered:  {"#d1fae5", "#065f46"},
	models.OrderStatusCancelled:  {"#fee2e2", "#991b1b"},
}

func StatusEmoji(status string) string {
	if e, ok := statusEmojis[status]; ok {
		return e
	}
	return "📋"
}

func StatusMessage(status string) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	return "Your order status has been updated."
}

func buildItemsTable(items []models.OrderItem) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(`
      <tr>
        <td style="padding: 12px 16px; border-bottom: 1px solid #e2e8f0; color: #334155;">%s</td>
        <td style="padding: 12px 16px; border-bottom: 1px solid #e2e8f0; text-align: center; color: #64748b;">%d</td>
        <td style="padding: 12px 16px; border-bottom: 1px solid #e2e8f0; text-align: right; color: #334155;">%s</td>
        <td style="padding: 12px 16px; border-bottom: 1px solid #e2e8f0; text-align: right; font-weight: 600; color: #334155;">%s</td>
      </tr>`, item.ProductName, item.Quantity, FormatMoney(item.Price), FormatMoney(item.Extension())))
	}

	return fmt.Sprintf(`
    <table style="width: 100%%; border-collapse: collapse; margin: 16px 0;">
      <thead>
        <tr style="background-color: #f8fafc;">
          <th style="padding: 12px 16px; text-align: left; font-size: 13px; color: #64748b; border-bottom: 2px solid #e2e8f0;">Product</th>
          <th style="padding: 12px 16px; text-align: center; font-size: 13px; color: #64748b; border-bottom: 2px solid #e2e8f0;">Qty</th>
          <th style="padding: 12px 16px; text-align: right; font-size: 13px; color: #64748b; border-bottom: 2px solid #e2e8f0;">Price</th>
          <th style="padding: 12px 16px; text-align: right; font-size: 13px; color: #64748b; border-bottom: 2px solid #e2e8f0;">Subtotal</th>
        </tr>
      </thead>
      <tbody>%s</tbody>
    </table>`, rows.String())
}

func baseEmailTemplate(storeName, title, content string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin: 0; padding: 0; background-color: #f1f5f9; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
    <div style="background: linear-gradient(135deg, #059669, #10b981); border-radius: 12px 12px 0 0; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px;">%s</h1>
      <p style="color: #d1fae5; margin: 8px 0 0; font-size: 14px;">%s</p>
    </div>
    <div style="background: white; padding: 32px; border-radius: 0 0 12px 12px;">
      %s
    </div>
    <div style="text-align: center; padding: 24px; color: #94a3b8; font-size: 12px;">
      <p style="margin: 0;">&copy; %d %s. All rights reserved.</p>
      <p style="margin: 4px 0 0;">This is an automated email. Please do not reply.</p>
    </div>
  </div>
</body>
</html>`, storeName, title, content, time.Now().Year(), storeName)
}

func deliveryAddressBlock(deliveryAddress string) string {
	if deliveryAddress == "" {
		return ""
	}
	return fmt.Sprintf(`
    <div style="margin-top: 24px;">
      <h3 style="color: #334155; margin: 0 0 8px; font-size: 16px;">📍 Delivery Address</h3>
      <p style="color: #64748b; margin: 0; font-size: 14px; line-height: 1.5;">%s</p>
    </div>`, deliveryAddress)
}

func poNumberRow(poNumber string) string {
	if poNumber == "" {
		return ""
	}
	return fmt.Sprintf(`
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">PO Number:</td>
          <td style="padding: 4px 0; text-align: right; font-weight: 600; color: #334155; font-size: 14px;">%s</td>
        </tr>`, poNumber)
}

// BuildOrderConfirmationBody renders the confirmation email sent right after
// an order is placed.
func BuildOrderConfirmationBody(storeName string, order *models.Order, buyerName string) string {
	content := fmt.Sprintf(`
    <h2 style="color: #334155; margin: 0 0 8px;">Order Confirmation</h2>
    <p style="color: #64748b; margin: 0 0 24px; font-size: 15px;">
      Thank you for your order, <strong>%s</strong>! Here are your order details:
    </p>
    <div style="background: #f8fafc; border-radius: 8px; padding: 16px; margin-bottom: 24px;">
      <table style="width: 100%%;">
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Order Number:</td>
          <td style="padding: 4px 0; text-align: right; font-weight: 600; color: #334155; font-size: 14px;">#%s</td>
        </tr>
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Date:</td>
          <td style="padding: 4px 0; text-align: right; color: #334155; font-size: 14px;">%s</td>
        </tr>
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Status:</td>
          <td style="padding: 4px 0; text-align: right; font-size: 14px;">
            <span style="background: #fef3c7; color: #92400e; padding: 2px 10px; border-radius: 12px; font-size: 12px; font-weight: 600;">⏳ PENDING</span>
          </td>
        </tr>%s
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Buyer:</td>
          <td style="padding: 4px 0; text-align: right; color: #334155; font-size: 14px;">%s</td>
        </tr>
      </table>
    </div>
    <h3 style="color: #334155; margin: 0 0 4px; font-size: 16px;">Items Ordered</h3>
    %s
    <div style="background: #f0fdf4; border-radius: 8px; padding: 16px; margin: 16px 0;">
      <table style="width: 100%%;">
        <tr>
          <td style="font-size: 18px; font-weight: 700; color: #334155;">Total</td>
          <td style="text-align: right; font-size: 18px; font-weight: 700; color: #059669;">%s</td>
        </tr>
      </table>
    </div>%s
    <hr style="border: none; border-top: 1px solid #e2e8f0; margin: 24px 0;">
    <p style="color: #64748b; font-size: 13px; margin: 0; text-align: center;">
      We'll email you when your order status is updated.
    </p>`,
		buyerName,
		order.Ref(),
		order.CreatedAt.Format("02 January 2006 15:04"),
		poNumberRow(order.PONumber),
		buyerName,
		buildItemsTable(order.OrderItems),
		FormatMoney(order.Total),
		deliveryAddressBlock(order.DeliveryAddress),
	)

	return baseEmailTemplate(storeName, "Order Confirmation", content)
}

// BuildStatusUpdateBody renders the email sent when an admin moves an order
// to a new status.
func BuildStatusUpdateBody(storeName string, order *models.Order, buyerName, newStatus string) string {
	emoji := StatusEmoji(newStatus)
	color, ok := statusColors[newStatus]
	if !ok {
		color = statusColor{"#f1f5f9", "#334155"}
	}

	content := fmt.Sprintf(`
    <div style="text-align: center; margin-bottom: 24px;">
      <div style="font-size: 48px; margin-bottom: 8px;">%s</div>
      <h2 style="color: #334155; margin: 0 0 8px;">Order Status Update</h2>
      <p style="color: #64748b; margin: 0; font-size: 15px;">%s</p>
    </div>
    <div style="text-align: center; margin-bottom: 24px;">
      <span style="background: %s; color: %s; padding: 6px 20px; border-radius: 20px; font-size: 14px; font-weight: 700; letter-spacing: 0.5px;">
        %s %s
      </span>
    </div>
    <div style="background: #f8fafc; border-radius: 8px; padding: 16px; margin-bottom: 24px;">
      <table style="width: 100%%;">
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Order Number:</td>
          <td style="padding: 4px 0; text-align: right; font-weight: 600; color: #334155; font-size: 14px;">#%s</td>
        </tr>
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Buyer:</td>
          <td style="padding: 4px 0; text-align: right; color: #334155; font-size: 14px;">%s</td>
        </tr>%s
        <tr>
          <td style="padding: 4px 0; color: #64748b; font-size: 14px;">Total:</td>
          <td style="padding: 4px 0; text-align: right; font-weight: 600; color: #059669; font-size: 14px;">%s</td>
        </tr>
      </table>
    </div>
    <h3 style="color: #334155; margin: 0 0 4px; font-size: 16px;">Items in this Order</h3>
    %s%s
    <hr style="border: none; border-top: 1px solid #e2e8f0; margin: 24px 0;">
    <p style="color: #64748b; font-size: 13px; margin: 0; text-align: center;">
      Thank you for shopping with us!
    </p>`,
		emoji,
		StatusMessage(newStatus),
		color.bg,
		color.text,
		emoji,
		newStatus,
		order.Ref(),
		buyerName,
		poNumberRow(order.PONumber),
		FormatMoney(order.Total),
		buildItemsTable(order.OrderItems),
		deliveryAddressBlock(order.DeliveryAddress),
	)

	return baseEmailTemplate(storeName, "Order Status Update", content)
}
