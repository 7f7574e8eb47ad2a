package pqr

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrInternalCommentForbidden is returned when a non-privileged author
// attempts to mark a comment internal.
var ErrInternalCommentForbidden = shared.NewDomainError("INTERNAL_COMMENT_FORBIDDEN", "Solo el personal puede crear comentarios internos")

// Attachment references an uploaded file on a comment
type Attachment struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Attachments stores comment attachments as JSONB
type Attachments []Attachment

// Value implements driver.Valuer for JSONB storage
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]Attachment{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Attachments: unsupported type")
	}
	if len(bytes) == 0 {
		*a = Attachments{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Comment is an immutable note on a ticket. Internal comments are visible
// only to admins, staff and the ticket's assignee.
type Comment struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	TicketID    uuid.UUID
	AuthorID    uuid.UUID
	AuthorName  string
	AuthorRole  string
	Content     string
	Internal    bool
	ParentID    *uuid.UUID
	Attachments Attachments
}

// NewComment creates a comment on a ticket. Marking a comment internal
// requires a staff or admin author; anyone else gets an authorization
// error rather than a silent downgrade.
func NewComment(tenantID, ticketID, authorID uuid.UUID, authorName, authorRole, content string, internal bool, authorIsPrivileged bool) (*Comment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if ticketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TICKET", "Ticket ID is required")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author ID is required")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment content cannot be empty")
	}
	if internal && !authorIsPrivileged {
		return nil, ErrInternalCommentForbidden
	}

	return &Comment{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		TicketID:    ticketID,
		AuthorID:    authorID,
		AuthorName:  authorName,
		AuthorRole:  authorRole,
		Content:     content,
		Internal:    internal,
		Attachments: Attachments{},
	}, nil
}

// SetParent threads the comment under another comment
func (c *Comment) SetParent(parentID uuid.UUID) {
	c.ParentID = &parentID
}

// AddAttachment appends a file reference to the comment
func (c *Comment) AddAttachment(att Attachment) {
	c.Attachments = append(c.Attachments, att)
}

// VisibleTo reports whether a viewer may read the comment. Admins, staff
// and the ticket's assignee see everything; everyone else sees only
// comments not marked internal.
func (c *Comment) VisibleTo(viewerIsAdmin, viewerIsStaff, viewerIsAssigned bool) bool {
	if viewerIsAdmin || viewerIsStaff || viewerIsAssigned {
		return true
	}
	return !c.Internal
}

// FilterVisible returns the comments the viewer may read
func FilterVisible(comments []Comment, viewerIsAdmin, viewerIsStaff, viewerIsAssigned bool) []Comment {
	visible := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.VisibleTo(viewerIsAdmin, viewerIsStaff, viewerIsAssigned) {
			visible = append(visible, c)
		}
	}
	return visible
}
