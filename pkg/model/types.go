package model

import internalmodel "github.com/goliatone/go-formlib/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeFile    = internalmodel.FieldTypeFile
)

const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type Schema = internalmodel.Schema

// MergeClasses re-exports the class-list union helper used when folding
// default styling into field attributes.
func MergeClasses(existing string, names ...string) string {
	return internalmodel.MergeClasses(existing, names...)
}
