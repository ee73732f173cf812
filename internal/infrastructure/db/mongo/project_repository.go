package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

const projectsCollection = "projects"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoTeamMember struct {
	Name    string `bson:"name"`
	Role    string `bson:"role"`
	Contact string `bson:"contact"`
}

type mongoDocument struct {
	Name       string    `bson:"name"`
	URL        string    `bson:"url"`
	UploadDate time.Time `bson:"upload_date"`
}

type mongoNote struct {
	Content string    `bson:"content"`
	Author  string    `bson:"author"`
	Date    time.Time `bson:"date"`
}

type mongoClientSummary struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
}

type mongoProject struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Client       primitive.ObjectID `bson:"client"`
	ClientName   string             `bson:"client_name"`
	ClientEmail  string             `bson:"client_email"`
	Service      string             `bson:"service"`
	Status       string             `bson:"status"`
	Priority     string             `bson:"priority"`
	Budget       *float64           `bson:"budget,omitempty"`
	StartDate    *time.Time         `bson:"start_date,omitempty"`
	EndDate      *time.Time         `bson:"end_date,omitempty"`
	DeadlineFrom *time.Time         `bson:"deadline_from,omitempty"`
	DeadlineTo   *time.Time         `bson:"deadline_to,omitempty"`
	Progress     int                `bson:"progress"`
	AssignedTeam []mongoTeamMember  `bson:"assigned_team"`
	Documents    []mongoDocument    `bson:"documents"`
	Notes        []mongoNote        `bson:"notes"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`

	// Populated by the $lookup stage only.
	ClientUser []mongoClientSummary `bson:"client_user,omitempty"`
}

// Create inserts a new project and assigns its id.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	clientID, err := primitive.ObjectIDFromHex(p.ClientID)
	if err != nil {
		return fmt.Errorf("insert project: client id %q: %w", p.ClientID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProject(p, clientID)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

// FindByID returns domain.ErrProjectNotFound for unknown and malformed ids alike.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

// List runs an aggregation: match, newest first, and when requested a join
// against users that keeps only the owner's public fields.
func (r *ProjectRepository) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	match := bson.M{}
	if filter.ClientID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ClientID)
		if err != nil {
			return []*domain.Project{}, nil
		}
		match["client"] = oid
	}
	if filter.Status != "" {
		match["status"] = string(filter.Status)
	}
	if filter.Service != "" {
		match["service"] = filter.Service
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if filter.WithClient {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: usersCollection},
				{Key: "localField", Value: "client"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "client_user"},
			}}},
			bson.D{{Key: "$project", Value: bson.D{
				{Key: "client_user.password_hash", Value: 0},
				{Key: "client_user.profile", Value: 0},
			}}},
		)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(docs))
	for i := range docs {
		projects = append(projects, docs[i].toDomain())
	}
	return projects, nil
}

// UpdateStatus sets status, progress and updated_at and pushes the note in a
// single find-and-modify.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	set := bson.M{
		"status":     string(update.Status),
		"updated_at": update.UpdatedAt,
	}
	if update.Progress != nil {
		set["progress"] = *update.Progress
	}
	change := bson.M{"$set": set}
	if update.Note != nil {
		change["$push"] = bson.M{"notes": mongoNote{
			Content: update.Note.Content,
			Author:  update.Note.Author,
			Date:    update.Note.Date,
		}}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoProject
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, change, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the projects collection.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("project indexes: %w", err)
	}
	return nil
}

func toMongoProject(p *domain.Project, clientID primitive.ObjectID) mongoProject {
	doc := mongoProject{
		Title:        p.Title,
		Description:  p.Description,
		Client:       clientID,
		ClientName:   p.ClientName,
		ClientEmail:  p.ClientEmail,
		Service:      p.Service,
		Status:       string(p.Status),
		Priority:     string(p.Priority),
		Budget:       p.Budget,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		DeadlineFrom: p.DeadlineFrom,
		DeadlineTo:   p.DeadlineTo,
		Progress:     p.Progress,
		AssignedTeam: make([]mongoTeamMember, 0, len(p.AssignedTeam)),
		Documents:    make([]mongoDocument, 0, len(p.Documents)),
		Notes:        make([]mongoNote, 0, len(p.Notes)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, m := range p.AssignedTeam {
		doc.AssignedTeam = append(doc.AssignedTeam, mongoTeamMember(m))
	}
	for _, d := range p.Documents {
		doc.Documents = append(doc.Documents, mongoDocument(d))
	}
	for _, n := range p.Notes {
		doc.Notes = append(doc.Notes, mongoNote(n))
	}
	return doc
}

func (d *mongoProject) toDomain() *domain.Project {
	p := &domain.Project{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ClientID:     d.Client.Hex(),
		ClientName:   d.ClientName,
		ClientEmail:  d.ClientEmail,
		Service:      d.Service,
		Status:       domain.ProjectStatus(d.Status),
		Priority:     domain.Priority(d.Priority),
		Budget:       d.Budget,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		DeadlineFrom: d.DeadlineFrom,
		DeadlineTo:   d.DeadlineTo,
		Progress:     d.Progress,
		AssignedTeam: make([]domain.TeamMember, 0, len(d.AssignedTeam)),
		Documents:    make([]domain.Document, 0, len(d.Documents)),
		Notes:        make([]domain.Note, 0, len(d.Notes)),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, m := range d.AssignedTeam {
		p.AssignedTeam = append(p.AssignedTeam, domain.TeamMember(m))
	}
	for _, doc := range d.Documents {
		p.Documents = append(p.Documents, domain.Document(doc))
	}
	for _, n := range d.Notes {
		p.Notes = append(p.Notes, domain.Note(n))
	}
	if len(d.ClientUser) > 0 {
		c := d.ClientUser[0]
		p.ClientUser = &domain.ClientSummary{ID: c.ID.Hex(), Username: c.Username, Email: c.Email}
	}
	return p
}
