package backend

import (
	"bufio"
	"context"
	"errors"
	"io"
	"maps"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-process RESP2 server implementing the commands the result
// store sends: strings, sorted sets and MULTI/EXEC. Unknown commands get an
// error reply, which go-redis tolerates for its connection handshake.
type fakeRedis struct {
	ln net.Listener

	mu    sync.Mutex
	blobs map[string]string
	zsets map[string]map[string]float64
	execs int
}

func newFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	f := &fakeRedis{
		ln:    ln,
		blobs: make(map[string]string),
		zsets: make(map[string]map[string]float64),
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}

			go f.serve(conn)
		}
	}()

	t.Cleanup(func() {
		_ = ln.Close()
	})

	return f
}

func (f *fakeRedis) Addr() string { return f.ln.Addr().String() }

// clusterClient returns a cluster client whose single node, owning every slot, is f.
func (f *fakeRedis) clusterClient(t *testing.T) *redis.ClusterClient {
	t.Helper()

	client := redis.NewClusterClient(&redis.ClusterOptions{
		ClusterSlots: func(context.Context) ([]redis.ClusterSlot, error) {
			return []redis.ClusterSlot{{
				Start: 0,
				End:   16383,
				Nodes: []redis.ClusterNode{{Addr: f.Addr()}},
			}}, nil
		},
		Protocol:               2,
		DisableRoutingPolicies: true,
	})

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// Keys returns every key held, sorted.
func (f *fakeRedis) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := slices.Collect(maps.Keys(f.blobs))
	keys = slices.AppendSeq(keys, maps.Keys(f.zsets))
	slices.Sort(keys)

	return keys
}

// Execs returns the number of transactions committed.
func (f *fakeRedis) Execs() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.execs
}

func (f *fakeRedis) serve(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	rd := bufio.NewReader(conn)
	wr := bufio.NewWriter(conn)

	var (
		inTx   bool
		queued [][]string
	)

	for {
		args, err := readCommand(rd)
		if err != nil {
			return
		}

		name := strings.ToLower(args[0])

		switch {
		case name == "multi":
			inTx, queued = true, nil
			wr.WriteString("+OK\r\n")
		case name == "exec" && inTx:
			f.mu.Lock()
			wr.WriteString("*" + strconv.Itoa(len(queued)) + "\r\n")

			for _, cmd := range queued {
				wr.WriteString(f.apply(cmd))
			}

			f.execs++
			f.mu.Unlock()

			inTx = false
		case name == "discard" && inTx:
			inTx = false
			wr.WriteString("+OK\r\n")
		case inTx:
			queued = append(queued, args)
			wr.WriteString("+QUEUED\r\n")
		default:
			f.mu.Lock()
			wr.WriteString(f.apply(args))
			f.mu.Unlock()
		}

		if rd.Buffered() == 0 {
			err = wr.Flush()
			if err != nil {
				return
			}
		}
	}
}

// apply runs one command and returns its encoded reply. f.mu must be held.
func (f *fakeRedis) apply(args []string) string {
	name, args := strings.ToLower(args[0]), args[1:]

	switch name {
	case "ping":
		return "+PONG\r\n"
	case "select":
		return "+OK\r\n"
	case "set":
		f.blobs[args[0]] = args[1]

		return "+OK\r\n"
	case "get":
		v, ok := f.blobs[args[0]]
		if !ok {
			return "$-1\r\n"
		}

		return bulk(v)
	case "del":
		n := 0

		for _, key := range args {
			if _, ok := f.blobs[key]; ok {
				delete(f.blobs, key)
				n++
			}

			if _, ok := f.zsets[key]; ok {
				delete(f.zsets, key)
				n++
			}
		}

		return integer(n)
	case "zadd":
		return f.zadd(args)
	case "zrem":
		n := 0

		for _, member := range args[1:] {
			if _, ok := f.zsets[args[0]][member]; ok {
				delete(f.zsets[args[0]], member)
				n++
			}
		}

		if len(f.zsets[args[0]]) == 0 {
			delete(f.zsets, args[0])
		}

		return integer(n)
	case "zrange":
		return f.zrange(args)
	default:
		return "-ERR unknown command '" + name + "'\r\n"
	}
}

func (f *fakeRedis) zadd(args []string) string {
	set, ok := f.zsets[args[0]]
	if !ok {
		set = make(map[string]float64)
		f.zsets[args[0]] = set
	}

	added := 0

	for i := 1; i+1 < len(args); i += 2 {
		score, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return "-ERR value is not a valid float\r\n"
		}

		if _, ok := set[args[i+1]]; !ok {
			added++
		}

		set[args[i+1]] = score
	}

	return integer(added)
}

func (f *fakeRedis) zrange(args []string) string {
	set := f.zsets[args[0]]

	members := slices.Collect(maps.Keys(set))
	slices.SortFunc(members, func(a, b string) int {
		if set[a] != set[b] {
			if set[a] < set[b] {
				return -1
			}

			return 1
		}

		return strings.Compare(a, b)
	})

	start, err1 := strconv.Atoi(args[1])
	stop, err2 := strconv.Atoi(args[2])

	if err1 != nil || err2 != nil {
		return "-ERR value is not an integer or out of range\r\n"
	}

	n := len(members)
	if start < 0 {
		start = max(n+start, 0)
	}

	if stop < 0 {
		stop = n + stop
	}

	stop = min(stop, n-1)

	if start > stop {
		return "*0\r\n"
	}

	var b strings.Builder

	b.WriteString("*" + strconv.Itoa(stop-start+1) + "\r\n")

	for _, member := range members[start : stop+1] {
		b.WriteString(bulk(member))
	}

	return b.String()
}

func bulk(v string) string {
	return "$" + strconv.Itoa(len(v)) + "\r\n" + v + "\r\n"
}

func integer(n int) string {
	return ":" + strconv.Itoa(n) + "\r\n"
}

var errProtocol = errors.New("protocol error")

// readCommand reads one RESP array of bulk strings.
func readCommand(rd *bufio.Reader) ([]string, error) {
	line, err := readLine(rd)
	if err != nil {
		return nil, err
	}

	if len(line) < 2 || line[0] != '*' {
		return nil, errProtocol
	}

	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 1 {
		return nil, errProtocol
	}

	args := make([]string, n)

	for i := range args {
		header, err := readLine(rd)
		if err != nil {
			return nil, err
		}

		if len(header) < 2 || header[0] != '$' {
			return nil, errProtocol
		}

		size, err := strconv.Atoi(header[1:])
		if err != nil || size < 0 {
			return nil, errProtocol
		}

		buf := make([]byte, size+2)

		_, err = io.ReadFull(rd, buf)
		if err != nil {
			return nil, err
		}

		args[i] = string(buf[:size])
	}

	return args, nil
}

func readLine(rd *bufio.Reader) (string, error) {
	line, err := rd.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(line, "\r\n"), nil
}
