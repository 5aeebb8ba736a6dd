package ledger

import (
	inventoryDomain "nexus-backend/internal/domain/inventory"
	invoiceDomain "nexus-backend/internal/domain/invoice"
)

const dateLayout = "2006-01-02"

// LotPayload is the canonical business payload of an INVENTORY_CREATE block.
// The backfill reconstructs payloads with these same builders, so field names
// and value types must stay stable.
func LotPayload(l *inventoryDomain.Lot) map[string]any {
	return map[string]any{
		"inventory_id": l.ID,
		"date":         l.Date.Format(dateLayout),
		"item":         l.Item,
		"category":     l.Category,
		"type":         l.Type,
		"qty":          l.Qty,
		"user":         l.Owner,
	}
}

// InvoicePayload is the canonical business payload of an INVOICE_CREATE block.
func InvoicePayload(inv *invoiceDomain.Invoice) map[string]any {
	return map[string]any{
		"invoice_id": inv.ID,
		"date":       inv.Date.Format(dateLayout),
		"client":     inv.Client,
		"total":      inv.Total,
		"user":       inv.Owner,
	}
}

// ApprovalPayload is the canonical business payload of an INVOICE_APPROVED
// block: the invoice, the lot it sells, and the approving actor.
func ApprovalPayload(inv *invoiceDomain.Invoice, l *inventoryDomain.Lot, actor string) map[string]any {
	return map[string]any{
		"invoice_id":   inv.ID,
		"inventory_id": l.ID,
		"date":         inv.Date.Format(dateLayout),
		"client":       inv.Client,
		"total":        inv.Total,
		"item":         l.Item,
		"category":     l.Category,
		"type":         l.Type,
		"qty":          l.Qty,
		"user":         actor,
	}
}
