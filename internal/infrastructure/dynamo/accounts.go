package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ray-auth-api/internal/domain"
)

// ErrConditionFailed is returned by UpdateIf when the condition expression
// does not hold at write time, i.e. the compare-and-swap lost a race.
var ErrConditionFailed = errors.New("conditional update failed")

// AccountRepo provides typed DynamoDB operations for the accounts table.
type AccountRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAccountRepo(client *dynamodb.Client, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

// Put inserts a new account. The condition on account_id guards against
// overwriting an existing item with a colliding key.
func (r *AccountRepo) Put(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(account_id)"),
	})
	if err != nil {
		return storeErr("put account", err)
	}
	return nil
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("account_id", accountID),
	})
	if err != nil {
		return nil, storeErr("get account", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, domain.ErrAccountNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an account through the email GSI. The caller is
// expected to pass an already-normalized address.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("email-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, storeErr("query accounts by email", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrAccountNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Items[0], &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("account_id", accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return storeErr("update account", err)
	}
	return nil
}

// UpdateIf applies updates only while condAttr still equals condValue at
// write time. This is the compare-and-swap used for single-use OTP
// consumption: two racing confirms can produce at most one success.
func (r *AccountRepo) UpdateIf(ctx context.Context, accountID string, updates map[string]interface{}, condAttr, condValue string) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	ue.Names["#cond"] = condAttr
	ue.Values[":cond"] = &types.AttributeValueMemberS{Value: condValue}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("account_id", accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#cond = :cond"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("account %s: %w", accountID, ErrConditionFailed)
		}
		return storeErr("conditional update account", err)
	}
	return nil
}

// storeErr flattens the SDK cause into the message (for server-side logs)
// while tagging the error with the ErrStoreUnavailable kind, so no raw
// storage error ever reaches a caller-visible code path.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStoreUnavailable)
}
