package detectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/javatree"
	"javacheck/internal/models"
)

func build(t *testing.T, src string) *ast.AST {
	t.Helper()
	p := javatree.NewParser()
	defer p.Close()

	root, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	tree, err := ast.Build(root)
	require.NoError(t, err)
	return tree
}

func issueLines(issues []models.Issue) []int {
	lines := make([]int, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.Line)
	}
	return lines
}

func TestClassicGetterDetector(t *testing.T) {
	tree := build(t, `class Point {
    private int x;
    private int y;

    public int getX() {
        return x;
    }
    public int getY() { return this.y; }
    public int getSum() { return x + y; }
    public int getFirst(int[] a) { return a[0]; }
    public int get() { return x; }
    public int compute() { return x; }
    public int getNeg() { return -x; }
}`)

	issues, err := NewClassicGetterDetector().Detect(tree, "Point.java")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 8}, issueLines(issues))
	assert.Equal(t, "getX", issues[0].Method)
	assert.Equal(t, models.IssueClassicGetter, issues[0].Type)
	assert.Equal(t, "Point.java", issues[0].File)
	assert.Contains(t, issues[1].Message, "'y'")
}

func TestClassicGetterDetector_StackedOperators(t *testing.T) {
	tree := build(t, `class Odd {
    private int x;
    public int getWeird() { return - -x; }
    public int getBumped() { return -x++; }
    public int getX() { return x; }
    public void setX(int v) { x = - -v; }
}`)

	issues, err := NewClassicGetterDetector().Detect(tree, "Odd.java")
	require.NoError(t, err)
	assert.Equal(t, []int{5}, issueLines(issues))

	issues, err = NewClassicSetterDetector().Detect(tree, "Odd.java")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestClassicGetterDetector_NoGetters(t *testing.T) {
	tree := build(t, `class Empty { void run() { System.out.println("hi"); } }`)
	issues, err := NewClassicGetterDetector().Detect(tree, "Empty.java")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestClassicSetterDetector(t *testing.T) {
	tree := build(t, `class Point {
    private int x;
    public void setX(int x) { this.x = x; }
    public void setY(int v) { y = v; }
    public void setZ(int v) { this.z = v * 2; }
    public void setW(int v) { this.w += v; }
    public void setAll(int a, int b) { x = a; }
    public void setQ(int v) { log(v); q = v; }
}`)

	issues, err := NewClassicSetterDetector().Detect(tree, "Point.java")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, issueLines(issues))
	assert.Equal(t, "setY", issues[1].Method)
	assert.Contains(t, issues[1].Message, "'y'")
}

func TestHybridConstructorDetector(t *testing.T) {
	tree := build(t, `class Account {
    Account() { this(0); }
    Account(int b) { this(b, "x"); log(b); }
    Account(int b, String c) { this.b = b; }
    Account(String s) { super(); init(); }
    Account(long l) {
        this((int) l);
        if (l > 0) { }
    }
}`)

	issues, err := NewHybridConstructorDetector().Detect(tree, "Account.java")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, issueLines(issues))
	assert.Equal(t, models.SeverityMedium, issues[0].Severity)
	assert.Equal(t, "Account", issues[0].Method)
}

func TestHybridConstructorDetector_Try(t *testing.T) {
	var c ctorStatements
	tree := build(t, `class T {
    T() {
        try { a(); } catch (Exception e) { }
    }
    T(int x) {
        try { a(); } finally { b(); }
    }
}`)
	ctors := callables(tree)
	require.Len(t, ctors, 2)

	for _, s := range statements(tree, ctors[0]) {
		c.traverse(tree, s)
	}
	assert.Equal(t, ctorStatements{other: 1}, c, "only the protected call counts")

	c = ctorStatements{}
	for _, s := range statements(tree, ctors[1]) {
		c.traverse(tree, s)
	}
	// Without a catch clause the finally statements cannot be told apart
	// from the protected block, so both are walked.
	assert.Equal(t, ctorStatements{other: 3}, c)
}

const nestedLoopsSource = `class M {
    void a(int[] xs) {
        for (int x : xs) {
            for (int y : xs) {
                while (x > y) { x--; }
            }
        }
    }
    void b() { for (;;) { break; } }
    void c(java.util.List<Integer> l) {
        do {
            l.forEach(v -> { for (int i = 0; i < v; i++) {} });
        } while (true);
    }
}`

func TestNestedLoopDetector(t *testing.T) {
	tree := build(t, nestedLoopsSource)

	issues, err := NewNestedLoopDetector().Detect(tree, "M.java")
	require.NoError(t, err)
	require.Equal(t, []int{4, 5, 12}, issueLines(issues))

	assert.Equal(t, models.SeverityMedium, issues[0].Severity)
	assert.Equal(t, "O(n^2)", issues[0].Complexity)
	assert.Equal(t, models.SeverityHigh, issues[1].Severity)
	assert.Equal(t, "O(n^3)", issues[1].Complexity)
	assert.Equal(t, "a", issues[1].Method)
	assert.Equal(t, "c", issues[2].Method)
}

func TestNestedLoopDetector_MaxDepth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.Performance.NestedLoops.MaxDepth = 2

	issues, err := NewNestedLoopDetectorWithConfig(cfg).Detect(build(t, nestedLoopsSource), "M.java")
	require.NoError(t, err)
	assert.Equal(t, []int{5}, issueLines(issues))
}

func TestNestedLoopDetector_AnonymousClassCountedOnce(t *testing.T) {
	tree := build(t, `class A {
    void outer(int[] xs) {
        for (int x : xs) {
            new Runnable() {
                public void run() {
                    for (int y : xs) { }
                }
            }.run();
        }
    }
}`)

	issues, err := NewNestedLoopDetector().Detect(tree, "A.java")
	require.NoError(t, err)
	assert.Equal(t, []int{6}, issueLines(issues))
	assert.Equal(t, "outer", issues[0].Method)
}

const concatSource = `class S {
    String out;
    String build(java.util.List<String> parts) {
        String s = "";
        int n = 0;
        for (String p : parts) {
            s += p;
            s = s + p + ",";
            n += 1;
            out = p + out;
            this.out = this.out + p;
        }
        s += "!";
        return s;
    }
}`

func TestStringConcatDetector(t *testing.T) {
	issues, err := NewStringConcatDetector().Detect(build(t, concatSource), "S.java")
	require.NoError(t, err)

	assert.Equal(t, []int{7, 8, 11}, issueLines(issues))
	assert.Equal(t, "String concatenation using += on 's' in loop", issues[0].Message)
	assert.Equal(t, "String concatenation using + on 's' in loop", issues[1].Message)
	assert.Equal(t, "build", issues[2].Method)
}

func TestStringConcatDetector_Disabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.Performance.StringConcat.DetectInLoops = false

	issues, err := NewStringConcatDetectorWithConfig(cfg).Detect(build(t, concatSource), "S.java")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestMethodLengthDetector(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.Complexity.MethodLength = config.ThresholdConfig{
		Enabled: true, MediumThreshold: 3, HighThreshold: 5, CriticalThreshold: 8,
	}
	tree := build(t, `class L {
    void shortOne() { a(); }
    void longOne() {
        a();
        b();
        c();
        d();
    }
}`)

	issues, err := NewMethodLengthDetectorWithConfig(cfg).Detect(tree, "L.java")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, "longOne", issues[0].Method)
	assert.Equal(t, models.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "Method length: 5 lines", issues[0].Complexity)

	issues, err = NewMethodLengthDetector().Detect(tree, "L.java")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

const complexSource = `class C {
    int f(int a, boolean b) {
        if (a > 0 && b) { return 1; }
        for (int i = 0; i < a; i++) { }
        while (b) { b = false; }
        int r = b ? 1 : 2;
        switch (a) {
            case 1: case 2: r = 3; break;
            default: r = 4;
        }
        try { g(); } catch (Exception e) { }
        Runnable q = () -> { if (b) { } };
        return r;
    }
    void g() {}
}`

func TestCyclomaticComplexity(t *testing.T) {
	tree := build(t, complexSource)
	methods := callables(tree)
	require.Len(t, methods, 2)

	got, err := CyclomaticComplexity(tree, methods[0])
	require.NoError(t, err)
	assert.Equal(t, 9, got)

	got, err = CyclomaticComplexity(tree, methods[1])
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestComplexityDetector(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.Complexity.CyclomaticComplexity = config.ThresholdConfig{
		Enabled: true, MediumThreshold: 5, HighThreshold: 8, CriticalThreshold: 12,
	}

	issues, err := NewComplexityDetectorWithConfig(cfg).Detect(build(t, complexSource), "C.java")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, models.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "Method 'f' has high cyclomatic complexity: 9", issues[0].Message)
}

func TestMethodChainDetector(t *testing.T) {
	tree := build(t, `class K {
    void m(Builder b) {
        b.a().b().c();
        b.a().b().c().d();
        foo(x.y().z(), bar());
        new Sb().append(1).append(2).append(3).toString();
    }
}`)

	issues, err := NewMethodChainDetector().Detect(tree, "K.java")
	require.NoError(t, err)
	require.Equal(t, []int{4, 6}, issueLines(issues))
	assert.Equal(t, "Chain of 4 calls: a().b().c().d()", issues[0].Message)
	assert.Equal(t, "Chain of 4 calls: append().append().append().toString()", issues[1].Message)
	assert.Equal(t, models.SeverityLow, issues[1].Severity)
}

func TestDetectorNames(t *testing.T) {
	detectors := []interface {
		Name() string
		Pattern() models.IssueType
	}{
		NewClassicGetterDetector(), NewClassicSetterDetector(), NewHybridConstructorDetector(),
		NewNestedLoopDetector(), NewStringConcatDetector(), NewMethodLengthDetector(),
		NewComplexityDetector(), NewMethodChainDetector(),
	}

	seen := make(map[models.IssueType]bool)
	for _, d := range detectors {
		assert.NotEmpty(t, d.Name())
		assert.False(t, seen[d.Pattern()], d.Pattern())
		seen[d.Pattern()] = true
	}
	assert.Len(t, seen, 8)
}
