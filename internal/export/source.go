package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	ErrUnsupportedFormat  = errors.New("export file is neither a JSON array nor JSON lines")
	ErrCollectionNotFound = errors.New("collection not found")
)

// DefaultDatabase is the travel application's database name.
const DefaultDatabase = "traveldb"

var inputExtensions = []string{".json", ".jsonl", ".ndjson"}

// Collection is the raw content of one source collection.
type Collection struct {
	// Name identifies where the documents came from, for logs.
	Name string
	Docs []bson.Raw
}

// Source yields collections by name. Collection tries names in order and
// returns ErrCollectionNotFound when none exists.
type Source interface {
	Collection(ctx context.Context, names []string) (Collection, error)
}

// DirSource reads <name>.json, <name>.jsonl or <name>.ndjson files from Dir.
// Files hold a JSON array or JSON lines in extended JSON, as mongoexport
// writes them.
type DirSource struct {
	Dir string
}

func (s DirSource) Collection(_ context.Context, names []string) (Collection, error) {
	path, ok := findInput(s.Dir, names)
	if !ok {
		return Collection{}, ErrCollectionNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, err
	}
	docs, err := parseExtJSON(data)
	if err != nil {
		return Collection{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Collection{Name: path, Docs: docs}, nil
}

func findInput(dir string, names []string) (string, bool) {
	for _, name := range names {
		for _, ext := range inputExtensions {
			path := filepath.Join(dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

// parseExtJSON splits a JSON array or a stream of JSON objects into BSON
// documents.
func parseExtJSON(data []byte) ([]bson.Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	switch data[0] {
	case '[':
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	case '{':
	default:
		return nil, ErrUnsupportedFormat
	}

	var docs []bson.Raw
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(docs)+1, err)
		}
		doc, err := extJSONDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func extJSONDocument(raw []byte) (bson.Raw, error) {
	var d bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &d); err != nil {
		return nil, err
	}
	return bson.Marshal(d)
}

// MongoSource reads collections from a live MongoDB database.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo connects to uri and checks the server answers before
// returning. Close releases the connection.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoSource, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("export: connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("export: pinging MongoDB: %w", err)
	}
	return &MongoSource{client: client, db: client.Database(database)}, nil
}

func (m *MongoSource) Collection(ctx context.Context, names []string) (Collection, error) {
	existing, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return Collection{}, fmt.Errorf("listing collections of %s: %w", m.db.Name(), err)
	}

	for _, name := range names {
		if !slices.Contains(existing, name) {
			continue
		}
		return m.find(ctx, name)
	}
	return Collection{}, ErrCollectionNotFound
}

func (m *MongoSource) find(ctx context.Context, name string) (Collection, error) {
	label := m.db.Name() + "." + name
	cur, err := m.db.Collection(name).Find(ctx, bson.D{})
	if err != nil {
		return Collection{}, fmt.Errorf("querying %s: %w", label, err)
	}
	defer cur.Close(ctx)

	var docs []bson.Raw
	for cur.Next(ctx) {
		docs = append(docs, slices.Clone(cur.Current))
	}
	if err := cur.Err(); err != nil {
		return Collection{}, fmt.Errorf("reading %s: %w", label, err)
	}
	return Collection{Name: label, Docs: docs}, nil
}

// Close disconnects from the server.
func (m *MongoSource) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
