package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableAPI is the subset of the DynamoDB client EnsureTable calls
type TableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableInput builds the CreateTable request for t
func TableInput(t Table) *dynamodb.CreateTableInput {
	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(t.Name),
		BillingMode: types.BillingModeProvisioned,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(t.ReadCapacity),
			WriteCapacityUnits: aws.Int64(t.WriteCapacity),
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(t.PartitionKey.Name), AttributeType: types.ScalarAttributeType(t.PartitionKey.Type)},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(t.PartitionKey.Name), KeyType: types.KeyTypeHash},
		},
	}
	if t.SortKey != nil {
		input.AttributeDefinitions = append(input.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(t.SortKey.Name),
			AttributeType: types.ScalarAttributeType(t.SortKey.Type),
		})
		input.KeySchema = append(input.KeySchema, types.KeySchemaElement{
			AttributeName: aws.String(t.SortKey.Name),
			KeyType:       types.KeyTypeRange,
		})
	}
	return input
}

// EnsureTable creates the table described by input unless it already
// exists, then waits up to maxWait for it to become active. It reports
// whether the table was created.
func EnsureTable(ctx context.Context, client TableAPI, input *dynamodb.CreateTableInput, maxWait time.Duration, logger *zap.Logger) (bool, error) {
	name := aws.ToString(input.TableName)

	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName})
	if err == nil {
		logger.Info("table exists", zap.String("table", name))
		return false, nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("failed to describe table %s: %w", name, err)
	}

	if _, err := client.CreateTable(ctx, input); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", name, err)
	}
	logger.Info("table created, waiting for it to become active", zap.String("table", name))

	waiter := dynamodb.NewTableExistsWaiter(client, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = time.Second
		o.MaxDelay = 20 * time.Second
	})
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, maxWait); err != nil {
		return true, fmt.Errorf("table %s did not become active: %w", name, err)
	}
	return true, nil
}
