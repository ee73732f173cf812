package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

func TestMalformedIDsAreNotFound(t *testing.T) {
	users := &UserRepository{}
	projects := &ProjectRepository{}
	ctx := context.Background()

	if _, err := users.FindByID(ctx, "not-an-object-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := users.ToggleActive(ctx, "xyz"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := projects.FindByID(ctx, "123"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := projects.UpdateStatus(ctx, "123", domain.StatusUpdate{Status: domain.StatusCompleted}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if err := projects.Delete(ctx, ""); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	list, err := projects.List(ctx, domain.ProjectFilter{ClientID: "bad"})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty listing for malformed client id, got %v %v", list, err)
	}
}

func TestUserQuery(t *testing.T) {
	active := false
	q := userQuery(domain.UserFilter{Role: domain.RoleUser, Active: &active, Search: "a.b"})

	if q["role"] != domain.RoleUser || q["is_active"] != false {
		t.Fatalf("unexpected query: %v", q)
	}
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over username and email: %v", q["$or"])
	}
	re := or[0].(bson.M)["username"].(primitive.Regex)
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("search must be escaped and case-insensitive: %+v", re)
	}

	if len(userQuery(domain.UserFilter{})) != 0 {
		t.Fatalf("empty filter must match everything")
	}
}

func TestProjectDocumentMapping(t *testing.T) {
	budget := 25000.0
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clientID := primitive.NewObjectID()

	p := &domain.Project{
		Title:       "Kitchen remodel",
		Description: "Cabinets",
		ClientName:  "alice",
		ClientEmail: "alice@example.com",
		Service:     domain.ServiceHomeRemodeling,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		Budget:      &budget,
		Notes:       []domain.Note{{Content: "hi", Author: domain.NoteAuthorAdmin, Date: now}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc := toMongoProject(p, clientID)
	if doc.Client != clientID || doc.AssignedTeam == nil || doc.Documents == nil {
		t.Fatalf("arrays must be stored empty rather than null: %+v", doc)
	}

	doc.ID = primitive.NewObjectID()
	doc.ClientUser = []mongoClientSummary{{ID: clientID, Username: "alice", Email: "alice@example.com"}}
	back := doc.toDomain()

	if back.ClientID != clientID.Hex() || back.ID != doc.ID.Hex() {
		t.Fatalf("ids not mapped: %+v", back)
	}
	if back.ClientUser == nil || back.ClientUser.Username != "alice" {
		t.Fatalf("joined client not mapped: %+v", back.ClientUser)
	}
	if len(back.Notes) != 1 || back.Notes[0].Author != domain.NoteAuthorAdmin {
		t.Fatalf("notes not mapped: %+v", back.Notes)
	}
	if back.Budget == nil || *back.Budget != budget {
		t.Fatalf("budget not mapped")
	}
}
