// dao/neo4j_dao.go
package dao

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperrors "github.com/oddsview/matchgate/errors"
	"github.com/oddsview/matchgate/model"
	helper_util "github.com/oddsview/matchgate/util/helper"
)

// Neo4jDAO reads entitlement data from the legacy graph store. Timestamps
// were written as RFC3339 strings by the previous generation of writers.
type Neo4jDAO struct {
	Driver neo4j.Driver
}

var _ EntitlementDAO = (*Neo4jDAO)(nil)

func NewNeo4jDAO(driver neo4j.Driver) *Neo4jDAO {
	return &Neo4jDAO{Driver: driver}
}

func (dao *Neo4jDAO) FindPolicyByAccessKey(ctx context.Context, apiKey string) (*model.ClusterEntitlementPolicy, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:CLUSTER {api_key: $apiKey})
        RETURN c.cluster_name AS clusterName,
               c.trial_period_days AS trialPeriodDays,
               c.price AS price
        LIMIT 1
        `
		records, err := transaction.Run(query, map[string]interface{}{"apiKey": apiKey})
		if err != nil {
			return nil, fmt.Errorf("failed to query cluster policy: %w", err)
		}
		if !records.Next() {
			return nil, apperrors.ErrClusterNotFound
		}
		rec := records.Record()

		policy := &model.ClusterEntitlementPolicy{APIKey: apiKey}
		if v, ok := rec.Get("clusterName"); ok && v != nil {
			policy.ClusterName = v.(string)
		}
		if v, ok := rec.Get("trialPeriodDays"); ok && v != nil {
			policy.TrialPeriodDays = int(v.(int64))
		}
		if v, ok := rec.Get("price"); ok && v != nil {
			policy.Price = v.(float64)
		}
		return policy, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.ClusterEntitlementPolicy), nil
}

func (dao *Neo4jDAO) FindRecord(ctx context.Context, matchID string) (*model.EntitlementRecord, error) {
	query := `
    MATCH (m:MATCH_ID {match_id: $matchID})
    RETURN m.cluster_name AS clusterName,
           m.created_on AS createdOn,
           m.valid_until AS validUntil,
           m.is_trial AS isTrial
    LIMIT 1
    `
	return dao.findRecord(matchID, query, map[string]interface{}{"matchID": matchID})
}

func (dao *Neo4jDAO) FindRecordForCluster(ctx context.Context, matchID, clusterName string) (*model.EntitlementRecord, error) {
	query := `
    MATCH (m:MATCH_ID {match_id: $matchID, cluster_name: $clusterName})
    RETURN m.cluster_name AS clusterName,
           m.created_on AS createdOn,
           m.valid_until AS validUntil,
           m.is_trial AS isTrial
    LIMIT 1
    `
	return dao.findRecord(matchID, query, map[string]interface{}{
		"matchID":     matchID,
		"clusterName": clusterName,
	})
}

func (dao *Neo4jDAO) findRecord(matchID, query string, parameters map[string]interface{}) (*model.EntitlementRecord, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		records, err := transaction.Run(query, parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to query entitlement record: %w", err)
		}
		if !records.Next() {
			return nil, apperrors.ErrRecordNotFound
		}
		rec := records.Record()

		record := &model.EntitlementRecord{MatchID: matchID}
		if v, ok := rec.Get("clusterName"); ok && v != nil {
			record.ClusterName = v.(string)
		}
		if v, ok := rec.Get("isTrial"); ok && v != nil {
			record.IsTrial = v.(bool)
		}
		if v, ok := rec.Get("createdOn"); ok && v != nil {
			createdOn, err := helper_util.ParseTime(v.(string))
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_on: %w", err)
			}
			record.CreatedOn = createdOn
		}
		if v, ok := rec.Get("validUntil"); ok {
			validUntil, err := helper_util.ParseNullableTime(v)
			if err != nil {
				return nil, fmt.Errorf("failed to parse valid_until: %w", err)
			}
			record.ValidUntil = validUntil
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.EntitlementRecord), nil
}

func (dao *Neo4jDAO) Ping(ctx context.Context) error {
	if err := dao.Driver.VerifyConnectivity(); err != nil {
		return fmt.Errorf("legacy store ping failed: %w", err)
	}
	return nil
}
