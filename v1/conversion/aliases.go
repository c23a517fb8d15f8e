package conversion

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

func ToGrpcAliasOperation(op rest.AliasOperation) (*qdrant.AliasOperations, error) {
	switch op := op.(type) {
	case *rest.CreateAliasOperation:
		if op == nil {
			break
		}
		return &qdrant.AliasOperations{Action: &qdrant.AliasOperations_CreateAlias{
			CreateAlias: &qdrant.CreateAlias{
				CollectionName: op.CreateAlias.CollectionName,
				AliasName:      op.CreateAlias.AliasName,
			},
		}}, nil
	case *rest.DeleteAliasOperation:
		if op == nil {
			break
		}
		return &qdrant.AliasOperations{Action: &qdrant.AliasOperations_DeleteAlias{
			DeleteAlias: &qdrant.DeleteAlias{AliasName: op.DeleteAlias.AliasName},
		}}, nil
	case *rest.RenameAliasOperation:
		if op == nil {
			break
		}
		return &qdrant.AliasOperations{Action: &qdrant.AliasOperations_RenameAlias{
			RenameAlias: &qdrant.RenameAlias{
				OldAliasName: op.RenameAlias.OldAliasName,
				NewAliasName: op.RenameAlias.NewAliasName,
			},
		}}, nil
	}
	return nil, invalidVariant("alias operation", op)
}

func ToRestAliasOperation(op *qdrant.AliasOperations) (rest.AliasOperation, error) {
	switch a := op.GetAction().(type) {
	case *qdrant.AliasOperations_CreateAlias:
		if a.CreateAlias == nil {
			break
		}
		return &rest.CreateAliasOperation{CreateAlias: rest.CreateAlias{
			CollectionName: a.CreateAlias.GetCollectionName(),
			AliasName:      a.CreateAlias.GetAliasName(),
		}}, nil
	case *qdrant.AliasOperations_DeleteAlias:
		if a.DeleteAlias == nil {
			break
		}
		return &rest.DeleteAliasOperation{DeleteAlias: rest.DeleteAlias{
			AliasName: a.DeleteAlias.GetAliasName(),
		}}, nil
	case *qdrant.AliasOperations_RenameAlias:
		if a.RenameAlias == nil {
			break
		}
		return &rest.RenameAliasOperation{RenameAlias: rest.RenameAlias{
			OldAliasName: a.RenameAlias.GetOldAliasName(),
			NewAliasName: a.RenameAlias.GetNewAliasName(),
		}}, nil
	}
	return nil, invalidVariant("alias operation", op)
}

// ToGrpcAliasOperations converts a batch of alias changes in order.
func ToGrpcAliasOperations(ops *rest.ChangeAliasesOperation) ([]*qdrant.AliasOperations, error) {
	if ops == nil || len(ops.Actions) == 0 {
		return nil, nil
	}
	out := make([]*qdrant.AliasOperations, 0, len(ops.Actions))
	for i, op := range ops.Actions {
		converted, err := ToGrpcAliasOperation(op)
		if err != nil {
			return nil, field(fmt.Sprintf("actions[%d]", i), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func ToRestAliasOperations(ops []*qdrant.AliasOperations) (*rest.ChangeAliasesOperation, error) {
	out := &rest.ChangeAliasesOperation{}
	for i, op := range ops {
		converted, err := ToRestAliasOperation(op)
		if err != nil {
			return nil, field(fmt.Sprintf("actions[%d]", i), err)
		}
		out.Actions = append(out.Actions, converted)
	}
	return out, nil
}
