package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sparkd_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI for tests. It understands the
// specific key schemas and expression shapes this codebase uses.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

var fakeTableKeys = map[string][]string{
	models.UserProfilesTable: {"userId"},
	models.SwipesTable:       {"swipedBy", "swipedUser"},
	models.ChatsTable:        {"pairKey"},
	models.MessagesTable:     {"chatId", "messageId"},
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func (f *fakeDynamo) itemKey(tableName string, item map[string]types.AttributeValue) (string, error) {
	attrs, ok := fakeTableKeys[tableName]
	if !ok {
		return "", fmt.Errorf("unknown table %q", tableName)
	}
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		s, ok := item[attr].(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("missing key attribute %q for table %q", attr, tableName)
		}
		parts = append(parts, s.Value)
	}
	return strings.Join(parts, "|"), nil
}

func (f *fakeDynamo) rowCount(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.table(tableName))
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return copyItem(item), nil
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.itemKey(tableName, marshaled)
	if err != nil {
		return err
	}
	f.table(tableName)[id] = marshaled
	return nil
}

func (f *fakeDynamo) PutItemIfAbsent(_ context.Context, tableName string, item interface{}, _ string) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.itemKey(tableName, marshaled)
	if err != nil {
		return err
	}
	if _, exists := f.table(tableName)[id]; exists {
		return ErrItemAlreadyExists
	}
	f.table(tableName)[id] = marshaled
	return nil
}

// UpdateItem applies an update expression, upserting a bare item from the
// key when none exists, mirroring DynamoDB's unconditional UpdateItem.
func (f *fakeDynamo) UpdateItem(_ context.Context, tableName, updateExpression string, key, values map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		item = copyItem(key)
		f.table(tableName)[id] = item
	}
	return applyUpdate(item, updateExpression, values)
}

// UpdateItemIfPresent refuses to touch a missing item, matching the
// attribute_exists conditional update.
func (f *fakeDynamo) UpdateItemIfPresent(_ context.Context, tableName, updateExpression string, key, values map[string]types.AttributeValue, _ map[string]string, _ string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return applyUpdate(item, updateExpression, values)
}

// applyUpdate supports the two expression shapes the services emit:
// "SET attr = :val" and "ADD attr :val" (string-set merge).
func applyUpdate(item map[string]types.AttributeValue, updateExpression string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	fields := strings.Fields(updateExpression)
	switch {
	case fields[0] == "SET" && len(fields) == 4:
		item[fields[1]] = values[fields[3]]
	case fields[0] == "ADD" && len(fields) == 3:
		attr := fields[1]
		added, ok := values[fields[2]].(*types.AttributeValueMemberSS)
		if !ok {
			return nil, fmt.Errorf("ADD expects a string set for %q", attr)
		}
		existing := map[string]struct{}{}
		var merged []string
		if current, ok := item[attr].(*types.AttributeValueMemberSS); ok {
			for _, v := range current.Value {
				existing[v] = struct{}{}
				merged = append(merged, v)
			}
		}
		for _, v := range added.Value {
			if _, dup := existing[v]; !dup {
				merged = append(merged, v)
			}
		}
		item[attr] = &types.AttributeValueMemberSS{Value: merged}
	default:
		return nil, fmt.Errorf("unsupported update expression %q", updateExpression)
	}
	return copyItem(item), nil
}

func (f *fakeDynamo) QueryItems(_ context.Context, tableName, keyCondition, filterExpression string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	return f.query(tableName, keyCondition, filterExpression, values, names)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, tableName, _, keyCondition, filterExpression string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	return f.query(tableName, keyCondition, filterExpression, values, names)
}

func (f *fakeDynamo) query(tableName, keyCondition, filterExpression string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	conditions := []string{keyCondition}
	if filterExpression != "" {
		conditions = append(conditions, filterExpression)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		match := true
		for _, cond := range conditions {
			attr, placeholder, err := parseEquality(cond, names)
			if err != nil {
				return nil, err
			}
			want, ok := values[placeholder].(*types.AttributeValueMemberS)
			if !ok {
				return nil, fmt.Errorf("missing value for %q", placeholder)
			}
			got, ok := item[attr].(*types.AttributeValueMemberS)
			if !ok || got.Value != want.Value {
				match = false
				break
			}
		}
		if match {
			results = append(results, copyItem(item))
		}
	}
	return results, nil
}

func (f *fakeDynamo) ScanWithFilter(_ context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, matchFields map[string]string, result interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		matches := true
		for attr, want := range matchFields {
			got, ok := item[attr].(*types.AttributeValueMemberS)
			if !ok || got.Value != want {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}
		if filterFunc == nil || filterFunc(item) {
			kept = append(kept, copyItem(item))
		}
	}
	return attributevalue.UnmarshalListOfMaps(kept, result)
}

// parseEquality handles single "attr = :placeholder" conditions,
// resolving "#name" aliases
func parseEquality(condition string, names map[string]string) (string, string, error) {
	parts := strings.Split(condition, " = ")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unsupported condition %q", condition)
	}
	attr := strings.TrimSpace(parts[0])
	if strings.HasPrefix(attr, "#") {
		resolved, ok := names[attr]
		if !ok {
			return "", "", fmt.Errorf("unresolved name %q", attr)
		}
		attr = resolved
	}
	placeholder := strings.TrimSpace(parts[1])
	return attr, placeholder, nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	copied := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		copied[k] = v
	}
	return copied
}
