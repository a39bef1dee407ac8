package repository

import (
	"context"
	"errors"

	"ticketdesk-service/internal/domain/entity"
	"ticketdesk-service/internal/domain/repository"
	"ticketdesk-service/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRepository implements TicketRepository over one collection
// per exhibition
type MongoTicketRepository struct {
	db *mongo.Database
}

// NewMongoTicketRepository creates a new MongoDB ticket repository
func NewMongoTicketRepository(db *mongo.Database) repository.TicketRepository {
	return &MongoTicketRepository{
		db: db,
	}
}

// Insert stores a single ticket
func (r *MongoTicketRepository) Insert(ctx context.Context, exhibition string, ticket *entity.Ticket) error {
	ticket.Exhibition = exhibition
	if ticket.ID == "" {
		ticket.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.db.Collection(exhibition).InsertOne(ctx, ticket)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrTicketNumberTaken
	}
	return err
}

// InsertMany stores tickets in order, stopping at the first conflict.
// The unique index resolves the conflict; documents before it persist.
func (r *MongoTicketRepository) InsertMany(ctx context.Context, exhibition string, tickets []*entity.Ticket) (int, error) {
	documents := make([]interface{}, 0, len(tickets))
	for _, ticket := range tickets {
		ticket.Exhibition = exhibition
		if ticket.ID == "" {
			ticket.ID = primitive.NewObjectID().Hex()
		}
		documents = append(documents, ticket)
	}

	opts := options.InsertMany().SetOrdered(true)
	result, err := r.db.Collection(exhibition).InsertMany(ctx, documents, opts)
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if mongo.IsDuplicateKeyError(err) && errors.As(err, &bulkErr) && len(bulkErr.WriteErrors) > 0 {
			// Ordered insert stops at the first write error, so the
			// failing document's index is the inserted count.
			return bulkErr.WriteErrors[0].Index, &apperrors.PartialInsertError{Inserted: bulkErr.WriteErrors[0].Index}
		}
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

// List returns the exhibition's full ticket list
func (r *MongoTicketRepository) List(ctx context.Context, exhibition string) ([]*entity.Ticket, error) {
	cursor, err := r.db.Collection(exhibition).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*entity.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// SetVerified updates the verification flag. The update is an
// idempotent $set: matching no document still succeeds.
func (r *MongoTicketRepository) SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error {
	_, err := r.db.Collection(exhibition).UpdateOne(
		ctx,
		bson.M{"ticketNumber": ticketNumber},
		bson.M{"$set": bson.M{"verified": verified}},
	)
	return err
}

// DeleteOne deletes the ticket with the given number
func (r *MongoTicketRepository) DeleteOne(ctx context.Context, exhibition, ticketNumber string) (int64, error) {
	result, err := r.db.Collection(exhibition).DeleteOne(ctx, bson.M{"ticketNumber": ticketNumber})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteMany deletes every ticket whose number is in ticketNumbers
func (r *MongoTicketRepository) DeleteMany(ctx context.Context, exhibition string, ticketNumbers []string) (int64, error) {
	result, err := r.db.Collection(exhibition).DeleteMany(
		ctx,
		bson.M{"ticketNumber": bson.M{"$in": ticketNumbers}},
	)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
