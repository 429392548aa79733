package models

// Owned is implemented by every record scoped to a single tenant.
type Owned interface {
	OwnerName() string
}

// InventoryItem tracks current stock for one (owner, itemName) pair.
// Quantity never goes negative; AvgCost is the weighted average purchase
// cost across restocks.
type InventoryItem struct {
	ID       string  `json:"id"`
	Owner    string  `json:"owner"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	AvgCost  float64 `json:"avgCost"`
}

func (i InventoryItem) OwnerName() string { return i.Owner }

// Sale is an immutable ledger entry. Total is always Quantity * Price.
type Sale struct {
	ID       string  `json:"id"`
	Owner    string  `json:"owner"`
	Date     string  `json:"date"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

func (s Sale) OwnerName() string { return s.Owner }

// Purchase is an immutable ledger entry recording a restock.
type Purchase struct {
	ID          string  `json:"id"`
	Owner       string  `json:"owner"`
	Date        string  `json:"date"`
	Vendor      string  `json:"vendor"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	ItemName    string  `json:"itemName"`
	Quantity    int     `json:"quantity"`
	Cost        float64 `json:"cost"`
	PaymentType string  `json:"paymentType"`
}

func (p Purchase) OwnerName() string { return p.Owner }

// Expense is an immutable ledger entry.
type Expense struct {
	ID     string  `json:"id"`
	Owner  string  `json:"owner"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func (e Expense) OwnerName() string { return e.Owner }

// BannerSetting is the wire shape of a banner update pushed to the remote
// store. Horizontal and vertical banners share the remote "banner" key and
// are discriminated by Key.
type BannerSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
