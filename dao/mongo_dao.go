// dao/mongo_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	apperrors "github.com/oddsview/matchgate/errors"
	"github.com/oddsview/matchgate/model"
)

// Collection name constants.
const (
	colClusters = "clusters"
	colMatchIDs = "match_ids"
)

// MongoDAO reads entitlement data from the primary MongoDB store.
type MongoDAO struct {
	client   *mongo.Client
	clusters *mongo.Collection
	matchIDs *mongo.Collection
}

var _ EntitlementDAO = (*MongoDAO)(nil)

func NewMongoDAO(client *mongo.Client, database string) *MongoDAO {
	db := client.Database(database)
	return &MongoDAO{
		client:   client,
		clusters: db.Collection(colClusters),
		matchIDs: db.Collection(colMatchIDs),
	}
}

func (dao *MongoDAO) FindPolicyByAccessKey(ctx context.Context, apiKey string) (*model.ClusterEntitlementPolicy, error) {
	var policy model.ClusterEntitlementPolicy
	err := dao.clusters.FindOne(ctx, bson.M{"api_key": apiKey}).Decode(&policy)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrClusterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster policy: %w", err)
	}
	return &policy, nil
}

func (dao *MongoDAO) FindRecord(ctx context.Context, matchID string) (*model.EntitlementRecord, error) {
	return dao.findRecord(ctx, bson.M{"match_id": matchID})
}

func (dao *MongoDAO) FindRecordForCluster(ctx context.Context, matchID, clusterName string) (*model.EntitlementRecord, error) {
	return dao.findRecord(ctx, bson.M{"match_id": matchID, "cluster_name": clusterName})
}

func (dao *MongoDAO) findRecord(ctx context.Context, filter bson.M) (*model.EntitlementRecord, error) {
	var record model.EntitlementRecord
	err := dao.matchIDs.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entitlement record: %w", err)
	}
	return &record, nil
}

func (dao *MongoDAO) Ping(ctx context.Context) error {
	if err := dao.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("record store ping failed: %w", err)
	}
	return nil
}
