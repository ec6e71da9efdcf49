package httpdto

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

type MarkConversationReadRequest struct {
	With uint `json:"with"`
}

type FriendRequestRequest struct {
	UserID uint `json:"user_id"`
}

type CreateProductRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	CO2ReductionKg float64 `json:"co2_reduction_kg"`
	ImageURL       string  `json:"image_url"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id"`
}

type PaymentRequest struct {
	OrderID uint `json:"order_id"`
}

type PresignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}
