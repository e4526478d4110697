package services

import (
	"context"
	"fmt"

	"penpals_server/models"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore keeps the whole penpals document as a single DynamoDB item
// under a fixed partition key, so Load and Save stay whole-document atomic.
type DynamoStore struct {
	Client *dynamodb.Client
	Table  string
}

// penpalsDocument is the stored item: the database plus its partition key.
type penpalsDocument struct {
	ID           string                         `dynamodbav:"id"`
	Users        map[string]*models.User        `dynamodbav:"users"`
	PendingCodes map[string]*models.PendingCode `dynamodbav:"pendingCodes"`
	Messages     []*models.Message              `dynamodbav:"messages"`
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{Client: client, Table: table}
}

func (s *DynamoStore) Load(ctx context.Context) (*models.Database, error) {
	output, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.Table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: models.DatabaseDocumentID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document from table '%s': %w", s.Table, err)
	}
	if output.Item == nil {
		return models.NewDatabase(), nil
	}

	var doc penpalsDocument
	if err := attributevalue.UnmarshalMap(output.Item, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	db := &models.Database{
		Users:        doc.Users,
		PendingCodes: doc.PendingCodes,
		Messages:     doc.Messages,
	}
	db.Normalize()
	return db, nil
}

func (s *DynamoStore) Save(ctx context.Context, db *models.Database) error {
	doc := penpalsDocument{
		ID:           models.DatabaseDocumentID,
		Users:        db.Users,
		PendingCodes: db.PendingCodes,
		Messages:     db.Messages,
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.Table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put document in table '%s': %w", s.Table, err)
	}
	return nil
}
