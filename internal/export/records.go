// Package export turns travel database records into corpus text documents.
//
// Records come from a live MongoDB database or from export files holding one
// collection each (mongoexport JSON lines or a JSON array, in extended JSON).
// Both paths decode through BSON, so ObjectIDs, dates and numbers arrive in
// their native types. Free-form fields tolerate the loose shapes a document
// database produces: numbers, arrays and nested documents all render as text.
package export

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Text is a free-form field rendered as a single line of text.
type Text string

// UnmarshalBSONValue accepts strings, numbers, booleans, ObjectIDs, dates,
// arrays (joined with " | ") and nested documents (kept as extended JSON).
func (t *Text) UnmarshalBSONValue(typ byte, data []byte) error {
	s, err := textOf(bson.RawValue{Type: bson.Type(typ), Value: data})
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// Or returns t, or def when t is blank.
func (t Text) Or(def string) string {
	if strings.TrimSpace(string(t)) == "" {
		return def
	}
	return string(t)
}

func textOf(v bson.RawValue) (string, error) {
	switch v.Type {
	case bson.TypeNull, bson.TypeUndefined:
		return "", nil
	case bson.TypeString:
		return v.StringValue(), nil
	case bson.TypeInt32:
		return strconv.Itoa(int(v.Int32())), nil
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10), nil
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64), nil
	case bson.TypeBoolean:
		return strconv.FormatBool(v.Boolean()), nil
	case bson.TypeObjectID:
		return v.ObjectID().Hex(), nil
	case bson.TypeDateTime:
		return time.UnixMilli(v.DateTime()).UTC().Format(time.DateTime), nil
	case bson.TypeArray:
		items, err := listOf(v)
		if err != nil {
			return "", err
		}
		return strings.Join(items, " | "), nil
	case bson.TypeEmbeddedDocument:
		out, err := bson.MarshalExtJSON(v.Document(), false, false)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return v.String(), nil
	}
}

// listOf renders each array element, dropping blank ones.
func listOf(v bson.RawValue) ([]string, error) {
	values, err := v.Array().Values()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, item := range values {
		s, err := textOf(item)
		if err != nil {
			return nil, err
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// TextList is a list field that may also arrive as one comma-separated string.
type TextList []string

func (l *TextList) UnmarshalBSONValue(typ byte, data []byte) error {
	v := bson.RawValue{Type: bson.Type(typ), Value: data}
	if v.Type == bson.TypeArray {
		items, err := listOf(v)
		if err != nil {
			return err
		}
		*l = items
		return nil
	}

	single, err := textOf(v)
	if err != nil {
		return err
	}
	var out TextList
	for _, s := range strings.Split(single, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Join renders the list with ", ".
func (l TextList) Join() string {
	return strings.Join(l, ", ")
}

// ObjectID is a record identifier: an ObjectID, a string or a number.
type ObjectID string

func (id *ObjectID) UnmarshalBSONValue(typ byte, data []byte) error {
	s, err := textOf(bson.RawValue{Type: bson.Type(typ), Value: data})
	if err != nil {
		return err
	}
	*id = ObjectID(s)
	return nil
}

type Destination struct {
	Name Text
}

// UnmarshalBSONValue reads {"name": ...} or a bare destination name.
func (d *Destination) UnmarshalBSONValue(typ byte, data []byte) error {
	v := bson.RawValue{Type: bson.Type(typ), Value: data}
	if v.Type != bson.TypeEmbeddedDocument {
		return d.Name.UnmarshalBSONValue(typ, data)
	}

	name, err := v.Document().LookupErr("name")
	if err != nil {
		d.Name = ""
		return nil
	}
	s, err := textOf(name)
	if err != nil {
		return err
	}
	d.Name = Text(s)
	return nil
}

type Tour struct {
	ID          ObjectID    `bson:"_id"`
	Name        Text        `bson:"name"`
	Description Text        `bson:"description"`
	Destination Destination `bson:"destination"`
	Location    Text        `bson:"location"`
	Duration    Text        `bson:"duration"`
	Type        Text        `bson:"type"`
	Itinerary   Text        `bson:"itinerary"`
	Notes       Text        `bson:"notes"`
}

type Contact struct {
	Email   Text `bson:"email"`
	Phone   Text `bson:"phone"`
	Website Text `bson:"website"`
}

type Hotel struct {
	ID          ObjectID `bson:"_id"`
	Name        Text     `bson:"name"`
	Address     Text     `bson:"address"`
	City        Text     `bson:"city"`
	Country     Text     `bson:"country"`
	Description Text     `bson:"description"`
	Type        Text     `bson:"type"`
	Amenities   TextList `bson:"amenities"`
	Contact     Contact  `bson:"contact"`
}

type Blog struct {
	ID        ObjectID `bson:"_id"`
	Title     Text     `bson:"title"`
	Author    Text     `bson:"author"`
	Category  Text     `bson:"category"`
	Tags      TextList `bson:"tags"`
	Excerpt   Text     `bson:"excerpt"`
	Content   Text     `bson:"content"`
	Location  Text     `bson:"location"`
	CreatedAt Text     `bson:"createdAt"`
}

type Guide struct {
	ID          ObjectID `bson:"_id"`
	Name        Text     `bson:"name"`
	Email       Text     `bson:"email"`
	Phone       Text     `bson:"phone"`
	Experience  Text     `bson:"experience"`
	Specialties TextList `bson:"specialties"`
	Languages   TextList `bson:"languages"`
	Bio         Text     `bson:"bio"`
	Rating      Text     `bson:"rating"`
	Regions     TextList `bson:"regions"`
	HourlyRate  Text     `bson:"hourlyRate"`
}
