package main

import (
	"fmt"
	"os"

	"github.com/aglyzov/go-lpm/prefix"
	"github.com/aglyzov/go-lpm/radix"
)

type Route struct {
	NextHop string
}

func main() {
	rt := radix.New[Route](prefix.IPv4)

	p1 := prefix.MustParse("10.10.10.0/24")
	p2 := prefix.MustParse("10.10.0.0/16")
	p3 := prefix.MustParse("10.10.0.0/24")

	rt.Insert(p1, Route{"1.1.1.1"})
	rt.Insert(p2, Route{"2.2.2.2"})
	rt.Insert(p3, Route{"3.3.3.3"})

	fmt.Println("insert p1, p2, p3")
	for n := rt.Root(); n != nil; n = n.Next() {
		fmt.Println(n.Prefix())
	}

	fmt.Println("payload iterator")
	for pfx, route := range rt.All() {
		fmt.Printf("%v %s\n", pfx, route.NextHop)
	}

	fmt.Println("longest match")
	for _, s := range []string{"10.10.10.0/28", "10.10.10.0/18"} {
		if n := rt.Match(prefix.MustParse(s)); n != nil {
			fmt.Printf("%s -> %v\n", s, n.Prefix())
		}
	}

	fmt.Println("lookup p3")
	n := rt.Find(p3)
	if n != nil {
		fmt.Println(n.Prefix())
	}

	fmt.Println("erase p3")
	rt.Erase(n)
	rt.DebugDump(os.Stdout)

	fmt.Println("erase p1")
	rt.Delete(p1)
	rt.DebugDump(os.Stdout)

	for _, s := range []string{"10.11.12.300/24", "10.11.12.0/33"} {
		if _, err := prefix.Parse(s); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
