package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KVItem is the DynamoDB item of one key. The table's partition key is "key".
type KVItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

type KVBackend struct {
	client    *dynamodb.Client
	tableName string
}

func NewKVBackend(client *dynamodb.Client, tableName string) *KVBackend {
	return &KVBackend{client: client, tableName: tableName}
}

// EnsureTable creates the table with on-demand billing when it does not exist.
func (b *KVBackend) EnsureTable(ctx context.Context) error {
	_, err := b.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(b.tableName)})
	if err == nil {
		return nil
	}

	_, err = b.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(b.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("key"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("key"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create DynamoDB table %s: %w", b.tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(b.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(b.tableName)}, 2*time.Minute); err != nil {
		return fmt.Errorf("failed waiting for DynamoDB table %s: %w", b.tableName, err)
	}
	return nil
}

func (b *KVBackend) itemKey(key string) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(map[string]string{"key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return av, nil
}

func (b *KVBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := b.itemKey(key)
	if err != nil {
		return nil, false, err
	}

	result, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(b.tableName),
		Key:            k,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	var item KVItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal kv item: %w", err)
	}
	return []byte(item.Value), true, nil
}

func (b *KVBackend) Set(ctx context.Context, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(KVItem{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal kv item: %w", err)
	}

	_, err = b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}

func (b *KVBackend) Delete(ctx context.Context, key string) error {
	k, err := b.itemKey(key)
	if err != nil {
		return err
	}

	_, err = b.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(b.tableName),
		Key:       k,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from DynamoDB: %w", err)
	}
	return nil
}
