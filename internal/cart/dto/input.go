package dto

type AddItemInput struct {
	StoreID   string
	SessionID string
	ProductID string
	Quantity  int // 0 = product minimum
	Notes     string
	Lang      string
}

type LineInput struct {
	StoreID   string
	SessionID string
	ProductID string
	Notes     string
	Lang      string
}

type UpdateQuantityInput struct {
	LineInput
	Quantity int
}

type UpdateNotesInput struct {
	LineInput
	NewNotes string
}
