// Package dynamodb implements the note store on a DynamoDB table keyed by
// id, with userId as the range key in the owner-scoped layout.
package dynamodb

import (
	"context"
	"fmt"

	"notes-backend/application/ports"
	"notes-backend/domain/note"
	pkgerrors "notes-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	attrID    = "id"
	attrText  = "text"
	attrOwner = "userId"
)

// DynamoDBAPI is the subset of the DynamoDB client the store calls
type DynamoDBAPI interface {
	dynamodb.ScanAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// NoteStore implements ports.NoteStore using DynamoDB
type NoteStore struct {
	client    DynamoDBAPI
	tableName string
	scoped    bool
	logger    *zap.Logger
}

// NewNoteStore creates a new NoteStore. When scoped is set every key
// carries the owner as its range attribute.
func NewNoteStore(client DynamoDBAPI, tableName string, scoped bool, logger *zap.Logger) ports.NoteStore {
	return &NoteStore{
		client:    client,
		tableName: tableName,
		scoped:    scoped,
		logger:    logger,
	}
}

func (s *NoteStore) key(k note.Key) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: k.ID},
	}
	if s.scoped {
		key[attrOwner] = &types.AttributeValueMemberS{Value: k.Owner}
	}
	return key
}

// Scan reads every page of the table. A non-empty owner narrows the scan
// with a filter on userId.
func (s *NoteStore) Scan(ctx context.Context, owner string) ([]note.Note, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}

	if owner != "" {
		filter := expression.Name(attrOwner).Equal(expression.Value(owner))
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build expression: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	notes := make([]note.Note, 0)
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("scan", err)
		}

		var items []note.Note
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
		}
		notes = append(notes, items...)
	}

	s.logger.Debug("Scanned notes",
		zap.String("table", s.tableName),
		zap.String("userID", owner),
		zap.Int("count", len(notes)),
	)
	return notes, nil
}

// Get reads one note, returning nil when the key holds no item
func (s *NoteStore) Get(ctx context.Context, key note.Key) (*note.Note, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(key),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get", err)
	}
	if len(result.Item) == 0 {
		return nil, nil
	}

	var n note.Note
	if err := attributevalue.UnmarshalMap(result.Item, &n); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note: %w", err)
	}
	return &n, nil
}

// Put writes the note, replacing any item with the same key
func (s *NoteStore) Put(ctx context.Context, n note.Note) (note.Note, error) {
	if !s.scoped {
		n.Owner = ""
	}

	av, err := attributevalue.MarshalMap(n)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to marshal note: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return note.Note{}, pkgerrors.NewDatabaseError("put", err)
	}

	return n, nil
}

// UpdateText sets the text attribute and returns the item as stored.
// No existence condition is applied, so an absent key is created.
func (s *NoteStore) UpdateText(ctx context.Context, key note.Key, text string) (note.Note, error) {
	update := expression.Set(expression.Name(attrText), expression.Value(text))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(key),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return note.Note{}, pkgerrors.NewDatabaseError("update", err)
	}

	var updated note.Note
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return note.Note{}, fmt.Errorf("failed to unmarshal note: %w", err)
	}
	return updated, nil
}

// Delete removes the item. Deleting an absent key succeeds.
func (s *NoteStore) Delete(ctx context.Context, key note.Key) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(key),
	}); err != nil {
		return pkgerrors.NewDatabaseError("delete", err)
	}
	return nil
}
