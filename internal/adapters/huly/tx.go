package huly

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/huly-agent/internal/domain"
)

const chatMeasureName = "chunter.create." + domain.ClassChatMessage + " " + domain.ClassChannel

type txCreateDoc struct {
	Class           string         `json:"_class"`
	ID              string         `json:"_id"`
	AttachedTo      string         `json:"attachedTo,omitempty"`
	AttachedToClass string         `json:"attachedToClass,omitempty"`
	Attributes      map[string]any `json:"attributes"`
	Collection      string         `json:"collection,omitempty"`
	CreatedBy       string         `json:"createdBy,omitempty"`
	ModifiedBy      string         `json:"modifiedBy,omitempty"`
	ModifiedOn      int64          `json:"modifiedOn"`
	ObjectClass     string         `json:"objectClass"`
	ObjectID        string         `json:"objectId"`
	ObjectSpace     string         `json:"objectSpace"`
	Space           string         `json:"space"`
}

type txUpdateDoc struct {
	Class       string         `json:"_class"`
	ID          string         `json:"_id"`
	ModifiedBy  string         `json:"modifiedBy,omitempty"`
	ModifiedOn  int64          `json:"modifiedOn"`
	ObjectClass string         `json:"objectClass"`
	ObjectID    string         `json:"objectId"`
	ObjectSpace string         `json:"objectSpace"`
	Operations  map[string]any `json:"operations"`
	Space       string         `json:"space"`
}

type txApplyIf struct {
	Class       string        `json:"_class"`
	ID          string        `json:"_id"`
	ExtraNotify []string      `json:"extraNotify"`
	Match       []any         `json:"match"`
	MeasureName string        `json:"measureName"`
	ModifiedBy  string        `json:"modifiedBy,omitempty"`
	ModifiedOn  int64         `json:"modifiedOn"`
	NotMatch    []any         `json:"notMatch"`
	Notify      bool          `json:"notify"`
	ObjectSpace string        `json:"objectSpace"`
	Space       string        `json:"space"`
	Txes        []txCreateDoc `json:"txes"`
}

// CreateDoc writes a new document of class into space and returns its id.
func (c *Client) CreateDoc(ctx context.Context, class, space string, attributes map[string]any) (string, error) {
	if attributes == nil {
		attributes = map[string]any{}
	}
	author := c.session.AccountID()
	objectID := newObjectID()

	tx := txCreateDoc{
		Class:       domain.ClassTxCreateDoc,
		ID:          newObjectID(),
		Attributes:  attributes,
		CreatedBy:   author,
		ModifiedBy:  author,
		ModifiedOn:  c.now().UnixMilli(),
		ObjectClass: class,
		ObjectID:    objectID,
		ObjectSpace: space,
		Space:       domain.SpaceTx,
	}
	if _, err := c.transport.Call(ctx, "tx", tx); err != nil {
		return "", err
	}
	return objectID, nil
}

// UpdateDoc applies operations to an existing document. Operations are sent
// untouched.
func (c *Client) UpdateDoc(ctx context.Context, class, space, objectID string, operations map[string]any) error {
	if objectID == "" {
		return fmt.Errorf("update %s: object id is required", class)
	}
	if operations == nil {
		operations = map[string]any{}
	}

	tx := txUpdateDoc{
		Class:       domain.ClassTxUpdateDoc,
		ID:          newObjectID(),
		ModifiedBy:  c.session.AccountID(),
		ModifiedOn:  c.now().UnixMilli(),
		ObjectClass: class,
		ObjectID:    objectID,
		ObjectSpace: space,
		Operations:  operations,
		Space:       domain.SpaceTx,
	}
	_, err := c.transport.Call(ctx, "tx", tx)
	return err
}

// SendChatMessage posts text to channelID as a chat message wrapped in a
// conditional apply transaction.
func (c *Client) SendChatMessage(ctx context.Context, channelID, text string) (json.RawMessage, error) {
	if channelID == "" {
		return nil, fmt.Errorf("send chat message: channel id is required")
	}

	document, err := json.Marshal(domain.TextDocument(text))
	if err != nil {
		return nil, fmt.Errorf("encode message document: %w", err)
	}

	author := c.session.AccountID()
	modifiedOn := c.now().UnixMilli()

	inner := txCreateDoc{
		Class:           domain.ClassTxCreateDoc,
		ID:              newObjectID(),
		AttachedTo:      channelID,
		AttachedToClass: domain.ClassChannel,
		Attributes: map[string]any{
			"attachments": 0,
			"message":     string(document),
		},
		Collection:  "messages",
		CreatedBy:   author,
		ModifiedBy:  author,
		ModifiedOn:  modifiedOn,
		ObjectClass: domain.ClassChatMessage,
		ObjectID:    newObjectID(),
		ObjectSpace: channelID,
		Space:       domain.SpaceTx,
	}

	outer := txApplyIf{
		Class:       domain.ClassTxApplyIf,
		ID:          newObjectID(),
		ExtraNotify: []string{},
		Match:       []any{},
		MeasureName: chatMeasureName,
		ModifiedBy:  author,
		ModifiedOn:  modifiedOn,
		NotMatch:    []any{},
		Notify:      true,
		ObjectSpace: domain.SpaceTx,
		Space:       domain.SpaceTx,
		Txes:        []txCreateDoc{inner},
	}

	return c.transport.Call(ctx, "tx", outer)
}

func (c *Client) now() time.Time {
	if c.clock != nil {
		return c.clock.Now()
	}
	return time.Now()
}
