package rest

import (
	"encoding/json"
	"fmt"
)

// AliasOperation is one alias mutation: *CreateAliasOperation,
// *DeleteAliasOperation or *RenameAliasOperation.
type AliasOperation interface {
	isAliasOperation()
}

type CreateAlias struct {
	CollectionName string `json:"collection_name"`
	AliasName      string `json:"alias_name"`
}

type DeleteAlias struct {
	AliasName string `json:"alias_name"`
}

type RenameAlias struct {
	OldAliasName string `json:"old_alias_name"`
	NewAliasName string `json:"new_alias_name"`
}

type CreateAliasOperation struct {
	CreateAlias CreateAlias `json:"create_alias"`
}

type DeleteAliasOperation struct {
	DeleteAlias DeleteAlias `json:"delete_alias"`
}

type RenameAliasOperation struct {
	RenameAlias RenameAlias `json:"rename_alias"`
}

func (*CreateAliasOperation) isAliasOperation() {}
func (*DeleteAliasOperation) isAliasOperation() {}
func (*RenameAliasOperation) isAliasOperation() {}

// DecodeAliasOperation parses an alias operation by its single key.
func DecodeAliasOperation(data []byte) (AliasOperation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if countKeys(fields, "create_alias", "delete_alias", "rename_alias") != 1 {
		return nil, unknownVariant("alias operation", data)
	}

	var op AliasOperation
	switch {
	case hasKey(fields, "create_alias"):
		op = &CreateAliasOperation{}
	case hasKey(fields, "delete_alias"):
		op = &DeleteAliasOperation{}
	default:
		op = &RenameAliasOperation{}
	}
	if err := json.Unmarshal(data, op); err != nil {
		return nil, err
	}
	return op, nil
}

// ChangeAliasesOperation is the body of an alias update request. Actions are
// applied in order.
type ChangeAliasesOperation struct {
	Actions []AliasOperation `json:"actions"`
}

func (c *ChangeAliasesOperation) UnmarshalJSON(data []byte) error {
	var aux struct {
		Actions []json.RawMessage `json:"actions"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Actions = make([]AliasOperation, 0, len(aux.Actions))
	for i, raw := range aux.Actions {
		op, err := DecodeAliasOperation(raw)
		if err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		c.Actions = append(c.Actions, op)
	}
	return nil
}
