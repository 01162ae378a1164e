package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"rhood_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableKeys maps each table to its key attribute names so the fake can
// build item keys the same way DynamoDB would
var tableKeys = map[string][]string{
	models.UserProfilesTable:       {"id"},
	models.MixesTable:              {"id"},
	models.OpportunitiesTable:      {"id"},
	models.ListeningSessionsTable:  {"userId", "startedAt"},
	models.UserEmbeddingsTable:     {"userId"},
	models.MixEmbeddingsTable:      {"mixId"},
	models.UserMixSimilarityTable:  {"userId", "mixId"},
	models.MatchesTable:            {"userId", "opportunityId"},
	models.ApplicationsTable:       {"userId", "opportunityId"},
	models.MatchFeedbackTable:      {"matchId", "userId"},
	models.PerformanceHistoryTable: {"userId", "performanceDate"},
	models.DJPreferencesTable:      {"userId", "preferenceType"},
	models.DJAvailabilityTable:     {"userId", "dateFrom"},
}

// fakeDynamo is an in-memory DynamoAPI for tests. It understands the
// narrow expression subset the services actually issue: single
// equality key conditions, AND-joined equality and ">" filters, and
// "SET a = :v" update expressions.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// failPut, when set, makes PutItem on that table fail
	failPut map[string]bool
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables:  make(map[string]map[string]map[string]types.AttributeValue),
		failPut: make(map[string]bool),
	}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	return f.tables[name]
}

func (f *fakeDynamo) itemKey(tableName string, item map[string]types.AttributeValue) (string, error) {
	keys, ok := tableKeys[tableName]
	if !ok {
		return "", fmt.Errorf("unknown table %q", tableName)
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		attr, ok := item[k]
		if !ok {
			return "", fmt.Errorf("item missing key attribute %q for table %q", k, tableName)
		}
		parts = append(parts, attrString(attr))
	}
	return strings.Join(parts, "|"), nil
}

// seed marshals a value and stores it, failing the test setup loudly
// on marshal errors
func (f *fakeDynamo) seed(tableName string, value interface{}) {
	if err := f.PutItem(context.Background(), tableName, value); err != nil {
		panic(err)
	}
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPut[tableName] {
		return fmt.Errorf("put rejected for table %q", tableName)
	}

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	id, err := f.itemKey(tableName, marshaled)
	if err != nil {
		return err
	}
	f.table(tableName)[id] = marshaled
	return nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, fmt.Errorf("item not found for update in table %q", tableName)
	}

	assignments := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(updateExpression), "SET"))
	for _, assignment := range strings.Split(assignments, ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported update expression %q", updateExpression)
		}
		attr := strings.TrimSpace(parts[0])
		if resolved, ok := expressionAttributeNames[attr]; ok {
			attr = resolved
		}
		placeholder := strings.TrimSpace(parts[1])
		value, ok := expressionAttributeValues[placeholder]
		if !ok {
			return nil, fmt.Errorf("missing expression value %q", placeholder)
		}
		item[attr] = value
	}
	f.table(tableName)[id] = item
	return item, nil
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.filterItems(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit)
}

func (f *fakeDynamo) ScanItems(ctx context.Context, tableName, filterExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) ([]map[string]types.AttributeValue, error) {
	return f.filterItems(tableName, filterExpression, expressionAttributeValues, expressionAttributeNames, 0)
}

func (f *fakeDynamo) filterItems(tableName, expression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		match, err := matchesExpression(item, expression, values, names)
		if err != nil {
			return nil, err
		}
		if match {
			results = append(results, item)
		}
	}

	// Deterministic ordering for tests: sort by item key
	sort.Slice(results, func(i, j int) bool {
		ki, _ := f.itemKey(tableName, results[i])
		kj, _ := f.itemKey(tableName, results[j])
		return ki < kj
	})

	if limit > 0 && int32(len(results)) > limit {
		results = results[:limit]
	}
	return results, nil
}

func matchesExpression(item map[string]types.AttributeValue, expression string, values map[string]types.AttributeValue, names map[string]string) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return true, nil
	}

	for _, term := range strings.Split(expression, " AND ") {
		op := "="
		if strings.Contains(term, ">") {
			op = ">"
		}
		parts := strings.SplitN(term, op, 2)
		if len(parts) != 2 {
			return false, fmt.Errorf("unsupported expression term %q", term)
		}
		attr := strings.TrimSpace(parts[0])
		if resolved, ok := names[attr]; ok {
			attr = resolved
		}
		placeholder := strings.TrimSpace(parts[1])
		want, ok := values[placeholder]
		if !ok {
			return false, fmt.Errorf("missing expression value %q", placeholder)
		}

		have, ok := item[attr]
		if !ok {
			return false, nil
		}
		switch op {
		case "=":
			if attrString(have) != attrString(want) {
				return false, nil
			}
		case ">":
			if attrString(have) <= attrString(want) {
				return false, nil
			}
		}
	}
	return true, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return err
	}
	delete(f.table(tableName), id)
	return nil
}

// TransactWrite applies Put operations atomically; the services only
// transact Puts
func (f *fakeDynamo) TransactWrite(ctx context.Context, items []types.TransactWriteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range items {
		if item.Put == nil {
			return fmt.Errorf("only Put transact items are supported")
		}
		if f.failPut[*item.Put.TableName] {
			return fmt.Errorf("transaction cancelled for table %q", *item.Put.TableName)
		}
	}
	for _, item := range items {
		id, err := f.itemKey(*item.Put.TableName, item.Put.Item)
		if err != nil {
			return err
		}
		f.table(*item.Put.TableName)[id] = item.Put.Item
	}
	return nil
}

func attrString(attr types.AttributeValue) string {
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%t", v.Value)
	default:
		return fmt.Sprintf("%v", attr)
	}
}

func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.table(tableName))
}
