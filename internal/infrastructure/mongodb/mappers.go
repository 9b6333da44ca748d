package mongodb

import (
	"bookstore-service/internal/domain/entities"
)

func toBookDocument(book *entities.Book) *BookDocument {
	return &BookDocument{
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		Price:         book.Price,
		Category:      book.Category,
		Stock:         book.Stock,
		Description:   book.Description,
		ImageURL:      book.ImageURL,
		Publisher:     book.Publisher,
		PublishedDate: book.PublishedDate,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

func toBookEntity(doc *BookDocument) *entities.Book {
	return &entities.Book{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Author:        doc.Author,
		ISBN:          doc.ISBN,
		Price:         doc.Price,
		Category:      doc.Category,
		Stock:         doc.Stock,
		Description:   doc.Description,
		ImageURL:      doc.ImageURL,
		Publisher:     doc.Publisher,
		PublishedDate: doc.PublishedDate,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func toOrderDocument(order *entities.Order) *OrderDocument {
	doc := &OrderDocument{
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		ShippingAddress: AddressDocument{
			Street:  order.ShippingAddress.Street,
			City:    order.ShippingAddress.City,
			State:   order.ShippingAddress.State,
			ZipCode: order.ShippingAddress.ZipCode,
			Country: order.ShippingAddress.Country,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Items:     make([]ItemDocument, len(order.Items)),
	}

	for i, item := range order.Items {
		doc.Items[i] = ItemDocument{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return doc
}

func toOrderEntity(doc *OrderDocument) *entities.Order {
	items := make([]entities.Item, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = entities.Item{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &entities.Order{
		OrderID:       doc.ID.Hex(),
		UserID:        doc.UserID,
		Items:         items,
		TotalAmount:   doc.TotalAmount,
		Status:        entities.OrderStatus(doc.Status),
		PaymentStatus: entities.PaymentStatus(doc.PaymentStatus),
		PaymentMethod: entities.PaymentMethod(doc.PaymentMethod),
		ShippingAddress: entities.Address{
			Street:  doc.ShippingAddress.Street,
			City:    doc.ShippingAddress.City,
			State:   doc.ShippingAddress.State,
			ZipCode: doc.ShippingAddress.ZipCode,
			Country: doc.ShippingAddress.Country,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toUserDocument(user *entities.User) *UserDocument {
	return &UserDocument{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Phone:        user.Phone,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toUserEntity(doc *UserDocument) *entities.User {
	return &entities.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         entities.Role(doc.Role),
		Phone:        doc.Phone,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
