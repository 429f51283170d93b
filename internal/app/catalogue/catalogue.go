// Package catalogue defines the fixed, ordered list of demonstration
// triggers. Each trigger deliberately causes exactly one kind of failure.
package catalogue

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/domain/person"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

// File names used by the file demonstrations. Only DefaultFixtureFile is
// ever created.
const (
	NonExistentFile    = "non_existent_file.txt"
	MissingFile        = "missing_file.txt"
	DefaultFixtureFile = "testfile.dat"
)

// Inputs of the in-process demonstrations.
const (
	Dividend      = 10
	ArrayLength   = 5
	BadIndex      = 10
	NegativeAge   = -5
	InvalidNumber = "invalid_number"
)

// Trigger names, in catalogue order.
const (
	NameReadLine        = "read a line from a non-existent file"
	NameOpenFile        = "open a missing file"
	NameReadPastEnd     = "read integers past the end of a binary file"
	NameConnectDB       = "connect to a database at an invalid address"
	NameCallStatus      = "call an unreachable status service"
	NameLoadType        = "load a missing type by name"
	NameDivideByZero    = "divide 10 by 0"
	NameNilDereference  = "dereference a nil string"
	NameIndexOutOfRange = "index element 10 of a 5-element array"
	NameInvalidCast     = "cast an integer to a string"
	NameNegativeAge     = "set a negative age"
	NameParseNumber     = "parse the text invalid_number as an integer"
)

// Deps are the collaborators the triggers exercise.
type Deps struct {
	Files    ports.FileStore
	Database ports.DatabaseConnector
	Types    ports.TypeResolver
	Status   ports.StatusClient
	Sink     ports.ReportSink

	// DSN is the connection string the database trigger dials.
	DSN string
	// MissingType is the type name the registry trigger looks up.
	MissingType string
	// FixtureFile is the binary file of big-endian int32s read past its end.
	// Empty means DefaultFixtureFile.
	FixtureFile string
}

// New returns the twelve triggers in catalogue order.
func New(deps Deps) []domain.Trigger {
	fixture := deps.FixtureFile
	if fixture == "" {
		fixture = DefaultFixtureFile
	}

	return []domain.Trigger{
		{Name: NameReadLine, Expected: domain.KindResourceNotFound, Op: readLine(deps.Files, deps.Sink, NonExistentFile)},
		{Name: NameOpenFile, Expected: domain.KindResourceNotFound, Op: openFile(deps.Files, MissingFile)},
		{Name: NameReadPastEnd, Expected: domain.KindStreamExhausted, Op: readInts(deps.Files, deps.Sink, fixture)},
		{Name: NameConnectDB, Expected: domain.KindConnectionUnavailable, Op: connect(deps.Database, deps.DSN)},
		{Name: NameCallStatus, Expected: domain.KindConnectionUnavailable, Op: fetchStatus(deps.Status, deps.Sink)},
		{Name: NameLoadType, Expected: domain.KindTypeNotFound, Op: loadType(deps.Types, deps.MissingType)},
		{Name: NameDivideByZero, Expected: domain.KindArithmeticInvalid, Op: divideByZero(deps.Sink)},
		{Name: NameNilDereference, Expected: domain.KindNullReference, Op: nilDereference(deps.Sink)},
		{Name: NameIndexOutOfRange, Expected: domain.KindIndexOutOfRange, Op: indexOutOfRange(deps.Sink)},
		{Name: NameInvalidCast, Expected: domain.KindInvalidCast, Op: invalidCast(deps.Sink)},
		{Name: NameNegativeAge, Expected: domain.KindInvalidArgument, Op: negativeAge()},
		{Name: NameParseNumber, Expected: domain.KindInvalidNumericFormat, Op: parseNumber(deps.Sink)},
	}
}

func readLine(files ports.FileStore, sink ports.ReportSink, name string) domain.Op {
	return func(ctx context.Context) error {
		r, err := files.Open(name)
		if err != nil {
			return err
		}
		defer closeQuietly(ctx, name, r)

		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		return sink.Emit(ctx, line)
	}
}

func openFile(files ports.FileStore, name string) domain.Op {
	return func(ctx context.Context) error {
		r, err := files.Open(name)
		if err != nil {
			return err
		}
		defer closeQuietly(ctx, name, r)
		return nil
	}
}

// readInts emits every int32 in the file and keeps reading until the stream
// runs out.
func readInts(files ports.FileStore, sink ports.ReportSink, name string) domain.Op {
	return func(ctx context.Context) error {
		r, err := files.Open(name)
		if err != nil {
			return err
		}
		defer closeQuietly(ctx, name, r)

		br := bufio.NewReader(r)
		for n := 0; ; n++ {
			var v int32
			if err := binary.Read(br, binary.BigEndian, &v); err != nil {
				return fmt.Errorf("reading %s after %d values: %w", name, n, err)
			}
			if err := sink.Emit(ctx, strconv.Itoa(int(v))); err != nil {
				return err
			}
		}
	}
}

func connect(db ports.DatabaseConnector, dsn string) domain.Op {
	return func(ctx context.Context) error {
		return db.Connect(ctx, dsn)
	}
}

func fetchStatus(status ports.StatusClient, sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		s, err := status.FetchStatus(ctx)
		if err != nil {
			return err
		}
		return sink.Emit(ctx, s)
	}
}

func loadType(types ports.TypeResolver, name string) domain.Op {
	return func(ctx context.Context) error {
		_, err := types.Resolve(ctx, name)
		return err
	}
}

func divideByZero(sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		divisor := 0
		return sink.Emit(ctx, strconv.Itoa(Dividend/divisor))
	}
}

func nilDereference(sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		var s *string
		return sink.Emit(ctx, strconv.Itoa(len(*s)))
	}
}

func indexOutOfRange(sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		arr := make([]int, ArrayLength)
		return sink.Emit(ctx, strconv.Itoa(ElementAt(arr, BadIndex)))
	}
}

// ElementAt returns arr[i] and panics with a runtime index error when i is
// out of range. arr is never modified.
func ElementAt(arr []int, i int) int {
	return arr[i]
}

func invalidCast(sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		var v any = Dividend
		return sink.Emit(ctx, v.(string))
	}
}

func negativeAge() domain.Op {
	return func(context.Context) error {
		p := &person.Person{Name: "demo"}
		return p.SetAge(NegativeAge)
	}
}

func parseNumber(sink ports.ReportSink) domain.Op {
	return func(ctx context.Context) error {
		n, err := strconv.Atoi(InvalidNumber)
		if err != nil {
			return err
		}
		return sink.Emit(ctx, strconv.Itoa(n))
	}
}

// closeQuietly closes a file handle, logging rather than returning a close
// failure so it never masks the trigger's own outcome.
func closeQuietly(ctx context.Context, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to close file",
			slog.String("file", name),
			slog.Any("error", err),
		)
	}
}
