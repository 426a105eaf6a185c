package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nahead/admin-dashboard/models"
)

// orderDoc is the shape of an order document in the remote collection.
// Cart line items carry product references that are resolved against
// the products collection at fetch time.
type orderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstname"`
	LastName   string             `bson:"lastname"`
	Email      string             `bson:"email"`
	Phone      int64              `bson:"phone"`
	Address    string             `bson:"address"`
	City       string             `bson:"city"`
	ZipCode    int                `bson:"zipcode"`
	TotalPrice float64            `bson:"total_price"`
	OrderDate  time.Time          `bson:"order_date"`
	Status     string             `bson:"order_status,omitempty"`
	CartItems  []cartItemDoc      `bson:"cart_items"`
}

type cartItemDoc struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Size      string             `bson:"size,omitempty"`
	Color     string             `bson:"color,omitempty"`
	Quantity  int                `bson:"quantity"`
}

// MongoOrders implements RemoteOrders against a MongoDB database holding
// "orders" and "products" collections.
type MongoOrders struct {
	OrderCollection   *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewMongoOrders creates a MongoOrders bound to the given database.
func NewMongoOrders(client *mongo.Client, database string) *MongoOrders {
	db := client.Database(database)
	return &MongoOrders{
		OrderCollection:   db.Collection("orders"),
		ProductCollection: db.Collection("products"),
	}
}

// FetchOrders retrieves every order document and resolves each cart line
// item's product reference to its name and image. Products are looked
// up once per fetch; a missing product degrades to a bare line item
// rather than failing the whole load.
func (m *MongoOrders) FetchOrders(ctx context.Context) ([]models.Order, error) {
	cursor, err := m.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	products := make(map[primitive.ObjectID]models.Product)

	var orders []models.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}

		order := models.Order{
			ID:         doc.ID.Hex(),
			FirstName:  doc.FirstName,
			LastName:   doc.LastName,
			Email:      doc.Email,
			Phone:      doc.Phone,
			Address:    doc.Address,
			City:       doc.City,
			ZipCode:    doc.ZipCode,
			TotalPrice: doc.TotalPrice,
			OrderDate:  doc.OrderDate,
			Status:     models.OrderStatus(doc.Status),
			CartItems:  make([]models.CartItem, 0, len(doc.CartItems)),
		}

		for _, item := range doc.CartItems {
			product, ok := products[item.ProductID]
			if !ok {
				err := m.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
				if err != nil && err != mongo.ErrNoDocuments {
					return nil, fmt.Errorf("resolve product %s: %w", item.ProductID.Hex(), err)
				}
				products[item.ProductID] = product
			}
			order.CartItems = append(order.CartItems, models.CartItem{
				Name:     product.Name,
				ImageRef: product.ImageRef,
				Size:     item.Size,
				Color:    item.Color,
				Quantity: item.Quantity,
			})
		}

		orders = append(orders, order)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return orders, nil
}

// SetOrderStatus patches only the status field of one order document.
// The update commits atomically; a vanished document is an error so the
// caller never mirrors a write that did not land.
func (m *MongoOrders) SetOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderID, err)
	}

	update := bson.M{
		"$set": bson.M{"order_status": string(status)},
	}
	result, err := m.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	return nil
}

// DeleteOrder removes one order document.
func (m *MongoOrders) DeleteOrder(ctx context.Context, orderID string) error {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderID, err)
	}

	result, err := m.OrderCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	return nil
}
