package counts

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var buckets = [][]byte{[]byte(RULES), []byte(LEXICON), []byte(SPANS)}

// Store persists accumulated counts across corpus shards in a bolt
// database, one bucket per count kind, spellings for keys and big
// endian float64 totals for values.
type Store struct {
	db *bbolt.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Add folds an accumulator into the stored totals in one transaction.
func (s *Store) Add(a *Accumulator) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		a.Each(func(kind, spelling string, count float64) {
			if err != nil {
				return
			}
			b := tx.Bucket([]byte(kind))
			key := []byte(spelling)
			err = b.Put(key, floatBytes(keyFloat(b, key)+count))
		})
		return err
	})
}

// Count returns the stored total of one spelling, zero when absent.
func (s *Store) Count(kind, spelling string) (float64, error) {
	var count float64
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		if b == nil {
			return errors.Errorf("unknown count kind %s", kind)
		}
		count = keyFloat(b, []byte(spelling))
		return nil
	})
	return count, err
}

// Dump writes every stored total in the accumulator TSV format,
// largest counts first.
func (s *Store) Dump(writer io.Writer) error {
	var table []row
	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, bucket := range buckets {
			kind := string(bucket)
			err := tx.Bucket(bucket).ForEach(func(k, v []byte) error {
				table = append(table, row{kind, string(k), bytesFloat(v)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeRows(writer, table)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func keyFloat(b *bbolt.Bucket, key []byte) float64 {
	raw := b.Get(key)
	if raw == nil {
		return 0
	}
	return bytesFloat(raw)
}

func floatBytes(v float64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}

func bytesFloat(raw []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(raw))
}
