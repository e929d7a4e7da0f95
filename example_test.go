// Copyright 2017-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package osmedit_test

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"

	"m4o.io/osmedit"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
)

func Example() {
	ds, err := osmedit.DecodeFile("testdata/square.osm")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Nodes: %d, Ways: %d, Relations: %d\n",
		ds.Count(model.NODE), ds.Count(model.WAY), ds.Count(model.RELATION))

	for _, hit := range index.New(ds).SelectAt(orb.Point{90.0005, 23.0005}, 5) {
		fmt.Println("selected", model.KeyOf(hit.Element))

		if err := ds.SetTag(model.KeyOf(hit.Element), "building", "hospital"); err != nil {
			log.Fatal(err)
		}
	}

	if err := osmedit.NewEncoder(os.Stdout, osmedit.WithGenerator("example")).Encode(ds); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Nodes: 5, Ways: 2, Relations: 1
	// selected way/10
	// <?xml version="1.0" encoding="UTF-8"?>
	// <osm version="0.6" generator="example">
	//   <way action="modify" id="10" version="1" changeset="100" uid="7" user="mapper">
	//     <nd ref="1"></nd>
	//     <nd ref="2"></nd>
	//     <nd ref="3"></nd>
	//     <nd ref="4"></nd>
	//     <nd ref="1"></nd>
	//     <tag k="building" v="hospital"></tag>
	//   </way>
	// </osm>
}
