package database

import (
	"context"
	"errors"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCaseNotFound = errors.New("caso no encontrado")

// CaseService persiste los casos de moderación. Las lecturas van directas a
// la colección: los casos mutan por $push de notas y la caché LRU del
// DataManager no vería esos cambios.
type CaseService struct {
	db *Database
}

// NewCaseService crea el servicio de casos.
func NewCaseService(db *Database) *CaseService {
	return &CaseService{db: db}
}

// nextCaseNumber reserva el siguiente número de caso del guild con un $inc
// atómico sobre el contador; el upsert crea el contador en el primer caso.
func (s *CaseService) nextCaseNumber(guildID string) (int64, error) {
	col := s.db.GetCollection("case_counters")
	if col == nil {
		return 0, errors.New("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.CaseCounter
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": guildID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// CreateCase asigna el número de caso y persiste el documento. Devuelve la
// copia persistida; el argumento no se modifica.
func (s *CaseService) CreateCase(c *models.Case) (*models.Case, error) {
	col := s.db.GetCollection("cases")
	if col == nil {
		return nil, errors.New("database not connected")
	}

	seq, err := s.nextCaseNumber(c.GuildID)
	if err != nil {
		return nil, err
	}

	doc := *c
	doc.CaseNumber = seq
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// AddNote añade una anotación al caso. Los casos sólo mutan por aquí.
func (s *CaseService) AddNote(guildID string, caseNumber int64, note models.CaseNote) error {
	col := s.db.GetCollection("cases")
	if col == nil {
		return errors.New("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := col.UpdateOne(ctx,
		bson.M{"guildId": guildID, "caseNumber": caseNumber},
		bson.M{"$push": bson.M{"notes": note}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// FindByCaseNumber devuelve un caso concreto, o nil si no existe.
func (s *CaseService) FindByCaseNumber(guildID string, caseNumber int64) (*models.Case, error) {
	col := s.db.GetCollection("cases")
	if col == nil {
		return nil, errors.New("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var c models.Case
	err := col.FindOne(ctx, bson.M{"guildId": guildID, "caseNumber": caseNumber}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// FindByUser devuelve el historial de un usuario, del caso más reciente al
// más antiguo.
func (s *CaseService) FindByUser(guildID, userID string) ([]*models.Case, error) {
	return s.find(bson.M{"guildId": guildID, "userId": userID}, 0)
}

// FindByType devuelve los casos de un tipo concreto para un usuario.
func (s *CaseService) FindByType(guildID, userID string, t models.CaseType) ([]*models.Case, error) {
	return s.find(bson.M{"guildId": guildID, "userId": userID, "type": t}, 0)
}

// FindRecent devuelve los últimos casos del guild.
func (s *CaseService) FindRecent(guildID string, limit int64) ([]*models.Case, error) {
	return s.find(bson.M{"guildId": guildID}, limit)
}

func (s *CaseService) find(query bson.M, limit int64) ([]*models.Case, error) {
	col := s.db.GetCollection("cases")
	if col == nil {
		return nil, errors.New("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "caseNumber", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var results []*models.Case
	for cursor.Next(ctx) {
		var c models.Case
		if err := cursor.Decode(&c); err != nil {
			continue
		}
		results = append(results, &c)
	}
	return results, cursor.Err()
}
