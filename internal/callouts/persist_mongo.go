package callouts

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotID = "callouts"

// MongoPersister stores the whole collection as one document. Records are
// never queried individually; ordering and filtering stay in memory.
type MongoPersister struct {
	coll *mongo.Collection
}

func NewMongoPersister(db *mongo.Database) *MongoPersister {
	return &MongoPersister{coll: db.Collection("snapshots")}
}

type snapshot struct {
	ID       string     `bson:"_id"`
	Callouts []*Callout `bson:"callouts"`
}

func (p *MongoPersister) Load(ctx context.Context) ([]*Callout, error) {
	var snap snapshot
	err := p.coll.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}

	// BSON datetimes carry millisecond precision and decode in local time.
	for _, c := range snap.Callouts {
		c.Date = c.Date.UTC()
	}
	return snap.Callouts, nil
}

func (p *MongoPersister) Save(ctx context.Context, callouts []*Callout) error {
	if callouts == nil {
		callouts = []*Callout{}
	}
	opts := options.Replace().SetUpsert(true)
	_, err := p.coll.ReplaceOne(ctx, bson.M{"_id": snapshotID}, snapshot{ID: snapshotID, Callouts: callouts}, opts)
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
