package utils

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StringAttr builds a DynamoDB string attribute value
func StringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// NumberAttr builds a DynamoDB number attribute value
func NumberAttr(v float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// BoolAttr builds a DynamoDB boolean attribute value
func BoolAttr(v bool) types.AttributeValue {
	return &types.AttributeValueMemberBOOL{Value: v}
}

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractFloat safely extracts a number from a DynamoDB attribute map
func ExtractFloat(item map[string]types.AttributeValue, field string) float64 {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberN); ok {
			if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
