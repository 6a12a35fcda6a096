package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/jenusanjay/imageservice/internal/entity"
)

type Metadata struct {
	db    *dynamodb.DynamoDB
	table string
}

type MetadataConfig struct {
	Session *session.Session
	Table   string
}

func New(c MetadataConfig) *Metadata {
	return &Metadata{
		db:    dynamodb.New(c.Session),
		table: c.Table,
	}
}

func (m *Metadata) Put(ctx context.Context, meta entity.ImageMetadata) error {
	item, err := dynamodbattribute.MarshalMap(meta)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	if _, err := m.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: &m.table,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item: %w: %w", entity.ErrStorage, err)
	}

	return nil
}

func (m *Metadata) Get(ctx context.Context, userID string, timestamp int64) (entity.ImageMetadata, error) {
	output, err := m.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: &m.table,
		Key:       key(userID, timestamp),
	})
	if err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("get item: %w: %w", entity.ErrStorage, err)
	}

	if len(output.Item) == 0 {
		return entity.ImageMetadata{}, fmt.Errorf("get item %s/%d: %w", userID, timestamp, entity.ErrNotFound)
	}

	var meta entity.ImageMetadata
	if err := dynamodbattribute.UnmarshalMap(output.Item, &meta); err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("unmarshal item: %w", err)
	}

	return meta, nil
}

func (m *Metadata) List(ctx context.Context, userID string) ([]entity.ImageMetadata, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("userId").Equal(expression.Value(userID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	var metas = []entity.ImageMetadata{}
	var pageErr error
	if err := m.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 &m.table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var part []entity.ImageMetadata
		if pageErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &part); pageErr != nil {
			return false
		}
		metas = append(metas, part...)
		return true
	}); err != nil {
		return nil, fmt.Errorf("query: %w: %w", entity.ErrStorage, err)
	}
	if pageErr != nil {
		return nil, fmt.Errorf("unmarshal items: %w", pageErr)
	}

	return metas, nil
}

func (m *Metadata) Delete(ctx context.Context, userID string, timestamp int64) error {
	if _, err := m.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: &m.table,
		Key:       key(userID, timestamp),
	}); err != nil {
		return fmt.Errorf("delete item: %w: %w", entity.ErrStorage, err)
	}

	return nil
}

func key(userID string, timestamp int64) map[string]*dynamodb.AttributeValue {
	n := strconv.FormatInt(timestamp, 10)

	return map[string]*dynamodb.AttributeValue{
		"userId":    {S: &userID},
		"timestamp": {N: &n},
	}
}
