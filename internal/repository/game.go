package repo

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

const recordsCollection = "records"

// GameRepository stores finished match records in MongoDB.
type GameRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewGameRepository(log *zap.SugaredLogger, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		log:   log,
		mongo: mongo,
	}
}

func (g *GameRepository) PutRecord(ctx context.Context, record game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(recordsCollection)

	filter := bson.M{"_id": record.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to store record %s: %w", record.ID, err)
	}

	g.log.Infof("record %s of room %s stored", record.ID, record.Room)
	return nil
}

func (g *GameRepository) GetRecord(ctx context.Context, id string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(recordsCollection)

	var record game.Record
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errors.ErrRecordNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Record{}, err
	}

	return record, nil
}
