package validation

// Messages of the semantic, lexical and reference rules. Those ending in %s take one argument.
const (
	MessageArrayMissingItems         = "array missing items"
	MessageArrayItemsShouldBeObject  = "array items should be an object"
	MessageTypeMissing               = "type missing"
	MessageWrongType                 = "type should be object"
	MessageMissingProperties         = "missing properties"
	MessageRequiredPropertyUndefined = "required property undefined: %s"
	MessageDuplicateKey              = "duplicate key: %s"
	MessageInvalidReference          = "invalid reference: %s"
	MessageUnresolvedReference       = "reference could not be resolved: %s"
	MessageSchemaValidationFailed    = "schema validation failed: %s"
)
