package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"rms_backend/internal/models"
)

// Envelope is the wire form of a command: {"type": "ADD_TABLE", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeCommand builds the typed command named by name from its JSON payload.
func DecodeCommand(name string, payload json.RawMessage) (Command, error) {
	switch name {
	case CmdSetPage:
		var d models.PageDescriptor
		if err := decodePayload(payload, &d); err != nil {
			return nil, err
		}
		view, err := d.View()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return SetPage{View: view}, nil
	case CmdOpenTable:
		return decodeAs[OpenTable](payload)
	case CmdUpdateTableStatus:
		return decodeAs[UpdateTableStatus](payload)
	case CmdAddItemToOrder:
		return decodeAs[AddItemToOrder](payload)
	case CmdUpdateItemQuantity:
		return decodeAs[UpdateItemQuantity](payload)
	case CmdRemoveItemFromOrder:
		return decodeAs[RemoveItemFromOrder](payload)
	case CmdUpdateCustomerDetails:
		return decodeAs[UpdateCustomerDetails](payload)
	case CmdFinalizeBill:
		return decodeAs[FinalizeBill](payload)
	case CmdMoveToCredit:
		return decodeAs[MoveToCredit](payload)
	case CmdAddMenuItem:
		return decodeAs[AddMenuItem](payload)
	case CmdAddExpense:
		return decodeAs[AddExpense](payload)
	case CmdPaySalaries:
		return PaySalaries{}, nil
	case CmdAddCustomer:
		return decodeAs[AddCustomer](payload)
	case CmdAddStaff:
		return decodeAs[AddStaff](payload)
	case CmdToggleStaffStatus:
		return decodeAs[ToggleStaffStatus](payload)
	case CmdAddCategory:
		return decodeAs[AddCategory](payload)
	case CmdDeleteCategory:
		return decodeAs[DeleteCategory](payload)
	case CmdAddTax:
		return decodeAs[AddTax](payload)
	case CmdDeleteTax:
		return decodeAs[DeleteTax](payload)
	case CmdToggleTaxStatus:
		return decodeAs[ToggleTaxStatus](payload)
	case CmdAddTable:
		return decodeAs[AddTable](payload)
	case CmdDeleteTable:
		return decodeAs[DeleteTable](payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func decodeAs[T Command](payload json.RawMessage) (Command, error) {
	var cmd T
	if err := decodePayload(payload, &cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func decodePayload(payload json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", ErrInvalidInput, err)
	}
	return nil
}
